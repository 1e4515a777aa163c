// Package openai implements the llm.Client interface on top of the
// OpenAI Chat Completions API. The system prompt, wallet context note
// and language directive are injected ahead of the conversation history.
package openai
