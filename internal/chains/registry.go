// Package chains 维护产品支持的 EVM 网络静态注册表。
// 注册表在进程生命周期内不可变，可通过 YAML 扩展文件追加网络。
package chains

import "strconv"

// Currency 描述链的原生代币。
type Currency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// Descriptor 描述一条链的接入信息，字段与钱包端 wallet_addEthereumChain 参数一致。
type Descriptor struct {
	ChainID           int      `json:"chainId" yaml:"chain_id"`
	ChainName         string   `json:"chainName" yaml:"chain_name"`
	RPCURLs           []string `json:"rpcUrls" yaml:"rpc_urls"`
	NativeCurrency    Currency `json:"nativeCurrency" yaml:"native_currency"`
	BlockExplorerURLs []string `json:"blockExplorerUrls" yaml:"block_explorer_urls"`
}

// DefaultExplorerURL 是链未注册时浏览器链接的兜底地址。
const DefaultExplorerURL = "https://etherscan.io"

func evm(id int, name, rpc, currencyName, symbol, explorer string) Descriptor {
	return Descriptor{
		ChainID:           id,
		ChainName:         name,
		RPCURLs:           []string{rpc},
		NativeCurrency:    Currency{Name: currencyName, Symbol: symbol, Decimals: 18},
		BlockExplorerURLs: []string{explorer},
	}
}

var supportedChains = map[int]Descriptor{
	1:      evm(1, "Ethereum Mainnet", "https://eth.llamarpc.com", "Ether", "ETH", "https://etherscan.io"),
	56:     evm(56, "BSC", "https://bsc-dataseed1.binance.org", "BNB", "BNB", "https://bscscan.com"),
	137:    evm(137, "Polygon Mainnet", "https://polygon-rpc.com", "POL", "POL", "https://polygonscan.com"),
	10:     evm(10, "Optimism", "https://mainnet.optimism.io", "Ether", "ETH", "https://optimistic.etherscan.io"),
	8453:   evm(8453, "Base", "https://mainnet.base.org", "Ether", "ETH", "https://basescan.org"),
	324:    evm(324, "zkSync", "https://mainnet.era.zksync.io", "Ether", "ETH", "https://explorer.zksync.io"),
	43114:  evm(43114, "Avalanche", "https://api.avax.network/ext/bc/C/rpc", "AVAX", "AVAX", "https://snowtrace.io"),
	42161:  evm(42161, "Arbitrum One", "https://arb1.arbitrum.io/rpc", "Ether", "ETH", "https://arbiscan.io"),
	59144:  evm(59144, "Linea", "https://rpc.linea.build", "Ether", "ETH", "https://lineascan.build"),
	534352: evm(534352, "Scroll", "https://rpc.scroll.io", "Ether", "ETH", "https://scrollscan.com"),
	81457:  evm(81457, "Blast", "https://rpc.blast.io", "Ether", "ETH", "https://blastscan.io"),
	5000:   evm(5000, "Mantle", "https://rpc.mantle.xyz", "MNT", "MNT", "https://explorer.mantle.xyz"),
	42170:  evm(42170, "Arbitrum Nova", "https://nova.arbitrum.io/rpc", "Ether", "ETH", "https://nova.arbiscan.io"),
	4200:   evm(4200, "Merlin", "https://rpc.merlinchain.io", "BTC", "BTC", "https://scan.merlinchain.io"),
	80094:  evm(80094, "Berachain Mainnet", "https://rpc.berachain.com", "BERA", "BERA", "https://beratrail.io"),
	204:    evm(204, "opBNB Mainnet", "https://opbnb-mainnet-rpc.bnbchain.org", "BNB", "BNB", "https://opbnbscan.com"),
	999:    evm(999, "HyperEVM", "https://rpc.hyperliquid.xyz/evm", "HYPE", "HYPE", "https://purrsec.com"),
	747474: evm(747474, "Katana Mainnet", "https://rpc.katana.so", "RON", "RON", "https://katanascan.io"),
	143:    evm(143, "Monad Mainnet", "https://rpc.monad.xyz", "MONAD", "MONAD", "https://monadscan.xyz"),
	100:    evm(100, "Gnosis", "https://rpc.gnosischain.com", "xDAI", "xDAI", "https://gnosisscan.io"),
	42220:  evm(42220, "Celo", "https://forno.celo.org", "Celo", "CELO", "https://celoscan.io"),
	1284:   evm(1284, "Moonbeam", "https://rpc.api.moonbeam.network", "GLMR", "GLMR", "https://moonbeam.moonscan.io"),
	252:    evm(252, "Fraxtal", "https://rpc.fraxtal.com", "FTX", "FTX", "https://fraxtalscan.com"),
	167000: evm(167000, "Taiko", "https://rpc.taiko.xyz", "TAI", "TAI", "https://explorer.taiko.xyz"),
	480:    evm(480, "World Mainnet", "https://rpc.worldchain.io", "WLD", "WLD", "https://worldscan.org"),
	146:    evm(146, "Sonic", "https://rpc.sonicnetwork.io", "SONIC", "SONIC", "https://sonicscan.io"),
	1329:   evm(1329, "Sei Mainnet", "https://sei-public.nodies.app", "SEI", "SEI", "https://seistream.app"),
	199:    evm(199, "BitTorrent", "https://rpc.bittorrentchain.io", "BTT", "BTT", "https://bttscan.com"),
	130:    evm(130, "Unichain", "https://rpc.unichain.network", "UNI", "UNI", "https://unichainscan.io"),
	2741:   evm(2741, "Abstract", "https://rpc.abstract.network", "ABS", "ABS", "https://abstractscan.io"),
	33139:  evm(33139, "ApeChain Mainnet", "https://rpc.apechain.com", "APE", "APE", "https://apescan.io"),
	1923:   evm(1923, "Swellchain", "https://rpc.swellchain.io", "SWELL", "SWELL", "https://swellscan.io"),
	988:    evm(988, "Stable Mainnet", "https://rpc.stable.network", "STABLE", "STABLE", "https://stablescan.io"),
	1285:   evm(1285, "Moonriver", "https://rpc.moonriver.moonbeam.network", "MOVR", "MOVR", "https://moonriver.moonscan.io"),
	50:     evm(50, "XDC", "https://rpc.xinfin.network", "XDC", "XDC", "https://explorer.xinfin.network"),
	250:    evm(250, "Fantom", "https://rpc.fantom.network", "FTM", "FTM", "https://ftmscan.com"),
}

// priorityChainIDs 是链检测时的探测顺序，越常用的链越靠前。
var priorityChainIDs = []int{
	1,      // Ethereum
	56,     // BSC
	137,    // Polygon
	42161,  // Arbitrum One
	10,     // Optimism
	8453,   // Base
	324,    // zkSync
	43114,  // Avalanche
	59144,  // Linea
	534352, // Scroll
	81457,  // Blast
	5000,   // Mantle
	42170,  // Arbitrum Nova
	204,    // opBNB
	100,    // Gnosis
	42220,  // Celo
	1284,   // Moonbeam
	252,    // Fraxtal
	167000, // Taiko
	480,    // World
	146,    // Sonic
	1329,   // Sei
	199,    // BitTorrent
	130,    // Unichain
	2741,   // Abstract
	33139,  // ApeChain
	80094,  // Berachain
	1923,   // Swellchain
	143,    // Monad
	999,    // HyperEVM
	988,    // Stable
	1285,   // Moonriver
	50,     // XDC
	747474, // Katana
	250,    // Fantom
	4200,   // Merlin
}

// Registry 提供链信息查询。零值不可用，必须经 NewRegistry 构造。
type Registry struct {
	chains   map[int]Descriptor
	priority []int
}

// NewRegistry 返回内置注册表。
func NewRegistry() *Registry {
	return &Registry{chains: supportedChains, priority: priorityChainIDs}
}

// Lookup 按数值链 ID 查询。
func (r *Registry) Lookup(chainID int) (Descriptor, bool) {
	desc, ok := r.chains[chainID]
	return desc, ok
}

// LookupString 按字符串链 ID 查询，无法解析时返回未命中。
func (r *Registry) LookupString(chainID string) (Descriptor, bool) {
	id, err := strconv.Atoi(chainID)
	if err != nil {
		return Descriptor{}, false
	}
	return r.Lookup(id)
}

// Supported 判断链是否被产品支持。
func (r *Registry) Supported(chainID int) bool {
	_, ok := r.chains[chainID]
	return ok
}

// PriorityChainIDs 返回链检测的探测顺序。
func (r *Registry) PriorityChainIDs() []int {
	ids := make([]int, len(r.priority))
	copy(ids, r.priority)
	return ids
}

// AllChainIDs 返回全部受支持的链 ID。
func (r *Registry) AllChainIDs() []int {
	ids := make([]int, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	return ids
}

// ExplorerURL 返回链的首个区块浏览器地址，未注册时退回默认浏览器。
func (r *Registry) ExplorerURL(chainID int) string {
	if desc, ok := r.chains[chainID]; ok && len(desc.BlockExplorerURLs) > 0 {
		return desc.BlockExplorerURLs[0]
	}
	return DefaultExplorerURL
}
