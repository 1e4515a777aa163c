package kb

import (
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// duplicateThreshold 之上的标题视为重复。
const duplicateThreshold = 0.8

// Deduplicate 按标题相似度去重，保留先出现的文章。
// 比较时标题转小写并去掉标点，两篇标题的分词按双向包含匹配，
// 匹配比例超过阈值即视为同一篇。
func Deduplicate(articles []Article) []Article {
	if len(articles) <= 1 {
		return articles
	}

	unique := make([]Article, 0, len(articles))
	seenTitles := make([]string, 0, len(articles))

	for _, article := range articles {
		normalized := normalizeTitle(article.Title)
		duplicate := false
		for _, seen := range seenTitles {
			if titleSimilarity(seen, normalized) > duplicateThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, article)
			seenTitles = append(seenTitles, normalized)
		}
	}
	return unique
}

func normalizeTitle(title string) string {
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(strings.ToLower(title), ""))
}

// titleSimilarity 计算当前标题相对已见标题的匹配比例。
// 单词只要与对方任一单词存在包含关系即算匹配，分母取两边较长的词数。
// 归一化只保留 ASCII 单词字符，纯中文标题会归一化为空串，
// 两个空标题视为同一篇。
func titleSimilarity(seen, current string) float64 {
	seenWords := strings.Fields(seen)
	currentWords := strings.Fields(current)
	if len(seenWords) == 0 && len(currentWords) == 0 {
		return 1
	}
	if len(seenWords) == 0 || len(currentWords) == 0 {
		return 0
	}

	matching := 0
	for _, word := range currentWords {
		for _, other := range seenWords {
			if strings.Contains(other, word) || strings.Contains(word, other) {
				matching++
				break
			}
		}
	}

	longest := len(seenWords)
	if len(currentWords) > longest {
		longest = len(currentWords)
	}
	return float64(matching) / float64(longest)
}
