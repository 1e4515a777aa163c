package i18n

import "fmt"

// 本文件集中维护工具合并阶段使用的双语文案。
// 英文文案与产品线上版本保持一致，中文为对应译文。

// ChainFound 是链检测成功且链已被注册时的回复。
func ChainFound(lang Language, chainName string) string {
	if lang == Chinese {
		return fmt.Sprintf("我在 **%s** 上找到了你的交易！点击下方按钮切换到该网络并添加账户。如果钱包中还没有这个网络，会自动为你添加。", chainName)
	}
	return fmt.Sprintf("I found your transaction on **%s**! Click the button below to switch to this network and add an account. If the network isn't in your wallet yet, it will be added automatically.", chainName)
}

// ChainUnsupported 是链检测成功但该链未在应用中配置时的回复。
func ChainUnsupported(lang Language, chainName, chainID, explorerURL string) string {
	if lang == Chinese {
		return fmt.Sprintf("我在 **%s**（Chain ID: %s）上找到了你的交易，但该链暂未在应用中配置。你可以在区块浏览器中查看：%s", chainName, chainID, explorerURL)
	}
	return fmt.Sprintf("I found your transaction on **%s** (Chain ID: %s), but this chain is not currently configured in the app. You can view it on the explorer: %s", chainName, chainID, explorerURL)
}

// ChainNotFound 是所有提供方都未找到交易时的回复。
func ChainNotFound(lang Language) string {
	return Pick(lang,
		"I couldn't find this transaction on any of the supported blockchain networks. Please verify the transaction hash is correct and the transaction has been confirmed.",
		"我没有在任何支持的区块链网络上找到这笔交易。请确认交易哈希正确，且交易已被确认。")
}

// AddChainLabel 是添加网络按钮的文字。
func AddChainLabel(lang Language, chainName string) string {
	if lang == Chinese {
		return fmt.Sprintf("添加 %s 账户", chainName)
	}
	return fmt.Sprintf("Add %s Account", chainName)
}

// ViewOnExplorerLabel 是浏览器跳转按钮的文字。
func ViewOnExplorerLabel(lang Language) string {
	return Pick(lang, "View on Explorer", "在区块浏览器中查看")
}

// ExplorerDescription 是浏览器跳转按钮的说明。
func ExplorerDescription(lang Language) string {
	return Pick(lang, "View transaction details on block explorer", "在区块浏览器中查看交易详情")
}

// AddChainDescription 是添加网络按钮的说明。
func AddChainDescription(lang Language, chainName string) string {
	if lang == Chinese {
		return fmt.Sprintf("切换到 %s 并添加账户", chainName)
	}
	return fmt.Sprintf("Switch to %s and add account", chainName)
}

// PortfolioTotal 是资产总览回复的第一句。
func PortfolioTotal(lang Language, totalUSD string) string {
	if lang == Chinese {
		return fmt.Sprintf("你的钱包资产总价值为 **$%s**。", totalUSD)
	}
	return fmt.Sprintf("Your wallet portfolio has a total value of **$%s**. ", totalUSD)
}

// PortfolioChains 补充资产分布的链数量。
func PortfolioChains(lang Language, count int) string {
	if lang == Chinese {
		return fmt.Sprintf("资产分布在 **%d 个区块链网络**。", count)
	}
	return fmt.Sprintf("Assets are distributed across **%d blockchain networks**. ", count)
}

// PortfolioTokens 补充持有的代币数量。
func PortfolioTokens(lang Language, count int) string {
	if lang == Chinese {
		return fmt.Sprintf("你持有 **%d 种代币**。", count)
	}
	return fmt.Sprintf("You hold **%d different tokens**. ", count)
}

// PortfolioTopAssets 列出按价值排序的头部资产。
func PortfolioTopAssets(lang Language, list string) string {
	if lang == Chinese {
		return fmt.Sprintf("\n\n主要资产：%s", list)
	}
	return fmt.Sprintf("\n\nTop assets: %s", list)
}

// PortfolioUnavailable 是资产数据获取失败时的回复。
func PortfolioUnavailable(lang Language) string {
	return Pick(lang,
		"I couldn't retrieve your portfolio data. Please make sure the wallet address is correct and has been used on supported chains.",
		"我暂时无法获取你的资产数据。请确认钱包地址正确，并且曾在受支持的链上使用过。")
}

// ExportPrompt 请用户选择导出时间范围。
func ExportPrompt(lang Language) string {
	return Pick(lang,
		"I can export your transaction history. Please choose a time period:",
		"我可以帮你导出交易记录。请选择时间范围：")
}

// ExportPeriodLabel 返回导出按钮的文字。
func ExportPeriodLabel(lang Language, period string) string {
	labels := map[string][2]string{
		"1week":   {"Export Last Week", "导出最近一周"},
		"1month":  {"Export Last Month", "导出最近一个月"},
		"3months": {"Export Last 3 Months", "导出最近三个月"},
	}
	pair, ok := labels[period]
	if !ok {
		return period
	}
	if lang == Chinese {
		return pair[1]
	}
	return pair[0]
}

// CategoryName 将推荐意图映射为展示名称。
func CategoryName(lang Language, intent string) string {
	names := map[string][2]string{
		"swap":    {"token swapping", "代币兑换"},
		"yield":   {"earning yield", "收益"},
		"bridge":  {"cross-chain bridging", "跨链桥接"},
		"lending": {"lending and borrowing", "借贷"},
		"general": {"DeFi", "DeFi"},
	}
	pair, ok := names[intent]
	if !ok {
		pair = names["general"]
	}
	if lang == Chinese {
		return pair[1]
	}
	return pair[0]
}

// RecommendIntro 是推荐结果非空时的回复。
func RecommendIntro(lang Language, category string) string {
	if lang == Chinese {
		return fmt.Sprintf("为你推荐以下%s平台。这些都是经过验证的协议，具有良好的安全记录。点击按钮可以直接访问：", category)
	}
	return fmt.Sprintf("I recommend the following platforms for %s. These are all battle-tested protocols with strong security records. Click the buttons to visit them:", category)
}

// RecommendEmpty 是没有匹配推荐时的回复。
func RecommendEmpty(lang Language) string {
	return Pick(lang,
		"Sorry, I couldn't find any DApp recommendations matching your criteria.",
		"抱歉，暂时没有找到符合你需求的 DApp 推荐。")
}

// OpenDAppLabel 是打开 DApp 按钮的文字。
func OpenDAppLabel(lang Language, name string) string {
	if lang == Chinese {
		return fmt.Sprintf("打开 %s", name)
	}
	return fmt.Sprintf("Open %s", name)
}

// KBViewLabel 是帮助文章跳转按钮的文字。
func KBViewLabel(lang Language, title string) string {
	if lang == Chinese {
		return fmt.Sprintf("查看: %s", title)
	}
	return fmt.Sprintf("View: %s", title)
}

// KBFooter 是帮助文章列表后附加的人工客服指引。
func KBFooter(lang Language) string {
	return Pick(lang,
		"Click the buttons below to view full articles. For further assistance, please click [Support & Feedback] in the app or send an email to support@token.im to contact customer service.",
		"点击下方按钮查看完整文章。如需更多帮助，请在 App 中点击 「帮助与反馈」 或发送邮件至 support@token.im 联系人工客服。")
}

// KBEmpty 是没有找到帮助文章时的回复。
func KBEmpty(lang Language) string {
	return Pick(lang,
		"I couldn't find specific help articles for your question. Please describe your issue and I'll do my best to help.",
		"抱歉，我暂时没有找到相关的内容。请描述你遇到的具体问题，我会尽力帮助你。")
}
