// Package i18n 负责回复语言的探测与双语文案。
// 金额格式与语言无关：始终按千分位分组、保留两位小数。
package i18n

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Language 表示回复使用的语言。
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// Detect 根据用户最后一条消息判断回复语言：包含汉字即视为中文。
func Detect(text string) Language {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return Chinese
		}
	}
	return English
}

// Normalize 将外部传入的 locale 字符串规整为受支持的语言。
func Normalize(locale string) Language {
	if locale == string(Chinese) {
		return Chinese
	}
	return English
}

// ZendeskLocale 将回复语言映射为帮助中心的 locale 代码。
func (l Language) ZendeskLocale() string {
	if l == Chinese {
		return "zh-cn"
	}
	return "en-us"
}

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD 按固定格式输出美元金额，例如 12,345.60。
// 文案翻译不影响金额格式。
func FormatUSD(value float64) string {
	return usdPrinter.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Pick 根据语言选择文案。
func Pick(lang Language, en, zh string) string {
	if lang == Chinese {
		return zh
	}
	return en
}
