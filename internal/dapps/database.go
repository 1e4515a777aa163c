// Package dapps 内置经过审核的 DApp 清单，并按用户意图做纯函数筛选。
package dapps

import "strings"

// Bilingual 是一段双语文案。
type Bilingual struct {
	EN string
	ZH string
}

// BilingualList 是一组双语条目。
type BilingualList struct {
	EN []string
	ZH []string
}

// DApp 描述一个可推荐的去中心化应用。
type DApp struct {
	ID          string
	Name        string
	Category    string
	Description Bilingual
	Features    []string
	Chains      []string
	URL         string
	Risks       Bilingual
	BestFor     BilingualList
}

// Intent 描述一次推荐请求。
type Intent struct {
	Type          string
	RiskTolerance string
	Chains        []string
}

// maxRecommendations 限制单次推荐数量。
const maxRecommendations = 4

var database = []DApp{
	{
		ID:       "tokenlon",
		Name:     "Tokenlon",
		Category: "aggregator",
		Description: Bilingual{
			EN: "Decentralized trading and payment settlement protocol with RFQ offering best prices and 99.76% success rate",
			ZH: "去中心化交易和支付结算协议，采用 RFQ 提供最优价格，交易成功率达 99.76%",
		},
		Features: []string{"What You See Is What You Get", "99.76% Success Rate", "Multi-chain Support", "No Gas Fees Required", "Slippage Compensation", "RFQ Order Matching"},
		Chains:   []string{"Ethereum", "Polygon", "Optimism", "Arbitrum", "BNB", "Base", "zkSync"},
		URL:      "https://tokenlon.im",
		Risks: Bilingual{
			EN: "Low risk - 6 years proven track record, 312K+ users, $43.5B+ trading volume, permissionless and trustless protocol",
			ZH: "低风险 - 6 年验证记录，31.2 万+用户，435亿+美元交易量，无需许可和信任的协议",
		},
		BestFor: BilingualList{
			EN: []string{"Guaranteed execution prices (WYSIWYG)", "Trading without ETH for gas", "High-success-rate trading", "Multi-chain token swaps"},
			ZH: []string{"保证执行价格（所见即所得）", "无需 ETH 作为 Gas 费的交易", "高成功率交易", "多链代币兑换"},
		},
	},
	{
		ID:       "uniswap",
		Name:     "Uniswap",
		Category: "dex",
		Description: Bilingual{
			EN: "The largest decentralized exchange with deep liquidity and best execution prices",
			ZH: "最大的去中心化交易所，流动性深厚，价格最优",
		},
		Features: []string{"Token Swaps", "Liquidity Pools", "Low Fees", "Wide Token Selection"},
		Chains:   []string{"Ethereum", "Polygon", "Arbitrum", "Optimism", "Base"},
		URL:      "https://app.uniswap.org",
		Risks: Bilingual{
			EN: "Low risk - Battle-tested protocol with $4B+ TVL",
			ZH: "低风险 - 久经考验的协议，TVL 超过 40 亿美元",
		},
		BestFor: BilingualList{
			EN: []string{"Token swapping", "Providing liquidity", "Best prices on Ethereum"},
			ZH: []string{"代币兑换", "提供流动性", "以太坊上最优价格"},
		},
	},
	{
		ID:       "1inch",
		Name:     "1inch",
		Category: "aggregator",
		Description: Bilingual{
			EN: "DEX aggregator that finds the best rates across multiple exchanges",
			ZH: "DEX 聚合器，在多个交易所中寻找最优汇率",
		},
		Features: []string{"Best Price Routing", "Gas Optimization", "Multi-chain Support", "Limit Orders"},
		Chains:   []string{"Ethereum", "BSC", "Polygon", "Arbitrum", "Optimism", "Base"},
		URL:      "https://app.1inch.io",
		Risks: Bilingual{
			EN: "Low risk - Aggregates from trusted DEXs",
			ZH: "低风险 - 聚合可信的 DEX",
		},
		BestFor: BilingualList{
			EN: []string{"Getting best swap rates", "Large trades", "Gas savings"},
			ZH: []string{"获得最佳兑换率", "大额交易", "节省 Gas"},
		},
	},
	{
		ID:       "sushiswap",
		Name:     "SushiSwap",
		Category: "dex",
		Description: Bilingual{
			EN: "Community-driven DEX with additional features like staking and lending",
			ZH: "社区驱动的 DEX，提供质押和借贷等额外功能",
		},
		Features: []string{"Token Swaps", "Yield Farming", "Staking", "Multi-chain"},
		Chains:   []string{"Ethereum", "Polygon", "Arbitrum", "BSC"},
		URL:      "https://www.sushi.com",
		Risks: Bilingual{
			EN: "Low-Medium risk - Established protocol with competitive yields",
			ZH: "中低风险 - 成熟的协议，收益率具有竞争力",
		},
		BestFor: BilingualList{
			EN: []string{"Yield farming", "Multi-chain swaps", "Community governance"},
			ZH: []string{"流动性挖矿", "多链兑换", "社区治理"},
		},
	},
	{
		ID:       "aave",
		Name:     "Aave",
		Category: "lending",
		Description: Bilingual{
			EN: "Leading lending protocol for borrowing and earning interest on crypto assets",
			ZH: "领先的借贷协议，可借款和赚取加密资产利息",
		},
		Features: []string{"Lending", "Borrowing", "Flash Loans", "Stable Interest Rates"},
		Chains:   []string{"Ethereum", "Polygon", "Arbitrum", "Optimism", "Avalanche"},
		URL:      "https://app.aave.com",
		Risks: Bilingual{
			EN: "Low risk - $10B+ TVL, audited smart contracts",
			ZH: "低风险 - TVL 超过 100 亿美元，智能合约已审计",
		},
		BestFor: BilingualList{
			EN: []string{"Earning interest on stablecoins", "Collateralized borrowing", "Flash loans"},
			ZH: []string{"稳定币赚取利息", "抵押借款", "闪电贷"},
		},
	},
	{
		ID:       "lido",
		Name:     "Lido",
		Category: "yield",
		Description: Bilingual{
			EN: "Liquid staking protocol - stake ETH and receive stETH while earning rewards",
			ZH: "流动性质押协议 - 质押 ETH 并获得 stETH，同时赚取奖励",
		},
		Features: []string{"Liquid Staking", "DeFi Integration", "No Minimum", "Daily Rewards"},
		Chains:   []string{"Ethereum"},
		URL:      "https://lido.fi",
		Risks: Bilingual{
			EN: "Low risk - Largest liquid staking provider with $25B+ TVL",
			ZH: "低风险 - 最大的流动性质押提供商，TVL 超过 250 亿美元",
		},
		BestFor: BilingualList{
			EN: []string{"ETH staking without locking", "Earning passive income", "Using staked ETH in DeFi"},
			ZH: []string{"ETH 质押无需锁定", "赚取被动收益", "在 DeFi 中使用质押的 ETH"},
		},
	},
	{
		ID:       "curve",
		Name:     "Curve Finance",
		Category: "dex",
		Description: Bilingual{
			EN: "Stablecoin-focused DEX with minimal slippage and high liquidity",
			ZH: "专注于稳定币的 DEX，滑点最小，流动性高",
		},
		Features: []string{"Stablecoin Swaps", "Low Slippage", "High Yields", "LP Tokens"},
		Chains:   []string{"Ethereum", "Polygon", "Arbitrum", "Optimism"},
		URL:      "https://curve.finance",
		Risks: Bilingual{
			EN: "Low risk - Specializes in stable asset trading",
			ZH: "低风险 - 专注于稳定资产交易",
		},
		BestFor: BilingualList{
			EN: []string{"Stablecoin swaps", "Low-risk yield farming", "Large stablecoin trades"},
			ZH: []string{"稳定币兑换", "低风险流动性挖矿", "大额稳定币交易"},
		},
	},
	{
		ID:       "stargate",
		Name:     "Stargate",
		Category: "bridge",
		Description: Bilingual{
			EN: "Cross-chain bridge with unified liquidity and instant guaranteed finality",
			ZH: "跨链桥，统一流动性和即时保证的最终确定性",
		},
		Features: []string{"Cross-chain Transfers", "Unified Liquidity", "Low Fees", "Fast Bridging"},
		Chains:   []string{"Ethereum", "BSC", "Polygon", "Arbitrum", "Optimism", "Avalanche"},
		URL:      "https://stargate.finance",
		Risks: Bilingual{
			EN: "Medium risk - Bridge protocols have higher risk, use for trusted chains",
			ZH: "中等风险 - 跨链桥协议风险较高，用于可信链",
		},
		BestFor: BilingualList{
			EN: []string{"Moving assets across chains", "Low-cost bridging", "Multi-chain strategies"},
			ZH: []string{"跨链转移资产", "低成本跨链", "多链策略"},
		},
	},
	{
		ID:       "makerdao",
		Name:     "MakerDAO",
		Category: "stablecoin",
		Description: Bilingual{
			EN: "Decentralized stablecoin protocol - mint DAI by collateralizing crypto assets",
			ZH: "去中心化稳定币协议 - 通过抵押加密资产铸造 DAI",
		},
		Features: []string{"DAI Stablecoin", "Collateralized Debt", "Savings Rate", "Decentralized"},
		Chains:   []string{"Ethereum"},
		URL:      "https://makerdao.com",
		Risks: Bilingual{
			EN: "Low risk - Oldest and most trusted decentralized stablecoin",
			ZH: "低风险 - 最古老、最可信的去中心化稳定币",
		},
		BestFor: BilingualList{
			EN: []string{"Minting stablecoins", "Earning DAI savings rate", "Hedging volatility"},
			ZH: []string{"铸造稳定币", "赚取 DAI 储蓄利率", "对冲波动性"},
		},
	},
	{
		ID:       "convex",
		Name:     "Convex Finance",
		Category: "yield",
		Description: Bilingual{
			EN: "Yield optimization platform for Curve LPs with boosted rewards",
			ZH: "Curve LP 的收益优化平台，提供增强奖励",
		},
		Features: []string{"Boosted Curve Yields", "No Lock-up", "CRV Staking", "Auto-compounding"},
		Chains:   []string{"Ethereum"},
		URL:      "https://www.convexfinance.com",
		Risks: Bilingual{
			EN: "Low-Medium risk - Builds on top of Curve protocol",
			ZH: "中低风险 - 基于 Curve 协议构建",
		},
		BestFor: BilingualList{
			EN: []string{"Maximizing Curve LP yields", "No locking CRV", "Passive yield farming"},
			ZH: []string{"最大化 Curve LP 收益", "无需锁定 CRV", "被动流动性挖矿"},
		},
	},
}

// Recommend 按意图、风险偏好和链范围筛选清单，最多返回 4 条。
// 纯函数：不访问网络，不修改内置数据。
func Recommend(intent Intent) []DApp {
	filtered := database

	switch intent.Type {
	case "swap":
		filtered = filterBy(filtered, func(d DApp) bool {
			return d.Category == "dex" || d.Category == "aggregator"
		})
	case "yield":
		filtered = filterBy(filtered, func(d DApp) bool {
			return d.Category == "yield" || d.Category == "lending"
		})
	case "bridge":
		filtered = filterBy(filtered, func(d DApp) bool { return d.Category == "bridge" })
	case "lending":
		filtered = filterBy(filtered, func(d DApp) bool { return d.Category == "lending" })
	}

	if len(intent.Chains) > 0 {
		filtered = filterBy(filtered, func(d DApp) bool {
			for _, want := range intent.Chains {
				for _, have := range d.Chains {
					if strings.EqualFold(want, have) {
						return true
					}
				}
			}
			return false
		})
	}

	if intent.RiskTolerance == "low" {
		filtered = filterBy(filtered, func(d DApp) bool {
			return strings.Contains(d.Risks.EN, "Low risk")
		})
	}

	if len(filtered) > maxRecommendations {
		filtered = filtered[:maxRecommendations]
	}
	return filtered
}

func filterBy(list []DApp, keep func(DApp) bool) []DApp {
	result := make([]DApp, 0, len(list))
	for _, d := range list {
		if keep(d) {
			result = append(result, d)
		}
	}
	return result
}
