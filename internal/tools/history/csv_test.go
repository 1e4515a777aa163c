package history

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"Wallet-Copilot/internal/i18n"
)

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
}

func parseCSV(t *testing.T, text string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	return rows
}

func TestToCSVEnglish(t *testing.T) {
	evm := []EVMTransaction{{
		Hash:         "0xabc",
		Timestamp:    1700000000,
		From:         "0xfrom",
		To:           "0xto",
		Value:        2.5e18,
		TokenName:    "Ether",
		TokenSymbol:  "ETH",
		TokenDecimal: 18,
		GasUsed:      21000,
		GasPriceWei:  1e9,
		ChainName:    "eth",
	}}
	tron := []TronTransaction{{
		Hash:         "txhash",
		TimestampMS:  1700000000000,
		OwnerAddress: "Towner",
		ToAddress:    "Tto",
		Amount:       1000000,
		NetFee:       345000,
		Confirmed:    true,
	}}

	text, err := ToCSV(evm, tron, i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := parseCSV(t, text)

	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "Network" || rows[0][9] != "Status" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	evmRow := rows[1]
	if evmRow[0] != "eth" || evmRow[5] != "2.500000" {
		t.Fatalf("unexpected evm row: %v", evmRow)
	}
	if evmRow[8] != "0.000021" {
		t.Fatalf("gas fee must be wei converted to ether: %v", evmRow[8])
	}
	if evmRow[9] != "Success" {
		t.Fatalf("unexpected status: %v", evmRow[9])
	}

	tronRow := rows[2]
	if tronRow[0] != "TRON" || tronRow[5] != "1.000000" {
		t.Fatalf("unexpected tron row: %v", tronRow)
	}
	if tronRow[6] != "TRX" || tronRow[8] != "0.345000" {
		t.Fatalf("tron defaults wrong: %v", tronRow)
	}
}

func TestToCSVChineseHeadersAndStatus(t *testing.T) {
	evm := []EVMTransaction{{Hash: "0xabc", Failed: true, TokenDecimal: 18}}
	tron := []TronTransaction{{Hash: "t", Confirmed: false}}

	text, err := ToCSV(evm, tron, i18n.Chinese)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := parseCSV(t, text)

	if rows[0][0] != "网络" || rows[0][9] != "状态" {
		t.Fatalf("chinese header missing: %v", rows[0])
	}
	if rows[1][9] != "失败" {
		t.Fatalf("failed evm tx must read 失败: %v", rows[1][9])
	}
	if rows[2][9] != "待确认" {
		t.Fatalf("unconfirmed tron tx must read 待确认: %v", rows[2][9])
	}
}

func TestToCSVEmptyInput(t *testing.T) {
	text, err := ToCSV(nil, nil, i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := parseCSV(t, text)
	if len(rows) != 1 {
		t.Fatalf("empty input must still emit the header, got %d rows", len(rows))
	}
}

func TestPeriodStart(t *testing.T) {
	now := mustTime(t)
	if got := now.Sub(periodStart(PeriodWeek, now)).Hours(); got != 7*24 {
		t.Fatalf("unexpected week window: %f hours", got)
	}
	if got := now.Sub(periodStart(PeriodThreeMonths, now)).Hours(); got != 90*24 {
		t.Fatalf("unexpected three month window: %f hours", got)
	}
}

func TestValidPeriod(t *testing.T) {
	for _, period := range []string{PeriodWeek, PeriodMonth, PeriodThreeMonths} {
		if !ValidPeriod(period) {
			t.Fatalf("period %s must be valid", period)
		}
	}
	if ValidPeriod("1year") {
		t.Fatalf("unknown period must be rejected")
	}
}
