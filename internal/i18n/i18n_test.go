package i18n

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		text string
		want Language
	}{
		{"what is layer 2", English},
		{"", English},
		{"我的资产有多少", Chinese},
		{"check 0xabc 的交易", Chinese},
	}
	for _, tc := range cases {
		if got := Detect(tc.text); got != tc.want {
			t.Fatalf("Detect(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("zh") != Chinese {
		t.Fatalf("zh must normalize to Chinese")
	}
	if Normalize("en") != English || Normalize("fr") != English {
		t.Fatalf("everything else must normalize to English")
	}
}

func TestZendeskLocale(t *testing.T) {
	if English.ZendeskLocale() != "en-us" || Chinese.ZendeskLocale() != "zh-cn" {
		t.Fatalf("unexpected locale mapping")
	}
}

func TestFormatUSDIsLanguageInvariant(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{12345.6, "12,345.60"},
		{0, "0.00"},
		{1000000, "1,000,000.00"},
		{99.999, "100.00"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.value); got != tc.want {
			t.Fatalf("FormatUSD(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestExportPeriodLabel(t *testing.T) {
	if ExportPeriodLabel(English, "1month") != "Export Last Month" {
		t.Fatalf("unexpected english label")
	}
	if ExportPeriodLabel(Chinese, "3months") != "导出最近三个月" {
		t.Fatalf("unexpected chinese label")
	}
	if ExportPeriodLabel(English, "1year") != "1year" {
		t.Fatalf("unknown period must pass through")
	}
}

func TestCategoryNameFallsBackToGeneral(t *testing.T) {
	if CategoryName(English, "mystery") != "DeFi" {
		t.Fatalf("unknown intent must map to DeFi")
	}
	if CategoryName(Chinese, "swap") != "代币兑换" {
		t.Fatalf("unexpected chinese category")
	}
}
