package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapCarriesCodeAndCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeProviderFailure, cause, "读取总资产失败")

	if CodeOf(err) != CodeProviderFailure {
		t.Fatalf("unexpected code: %s", CodeOf(err))
	}
	if !Is(err, CodeProviderFailure) {
		t.Fatalf("Is must match the wrapped code")
	}
	if Is(err, CodeTimeout) {
		t.Fatalf("Is must not match a different code")
	}
	if !stdErrors.Is(err, cause) {
		t.Fatalf("wrapped error must unwrap to the cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("message must include the cause: %s", err.Error())
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if code := CodeOf(stdErrors.New("boom")); code != CodeUnknown {
		t.Fatalf("plain errors must map to UNKNOWN, got %s", code)
	}
	wrapped := fmt.Errorf("outer: %w", New(CodeTimeout, "操作超时"))
	if code := CodeOf(wrapped); code != CodeTimeout {
		t.Fatalf("code must survive fmt wrapping, got %s", code)
	}
}

func TestAttributesOfFallsBackToUnknown(t *testing.T) {
	attrs := AttributesOf(CodePlannerFailure)
	if attrs.Severity != SeverityWarning || !attrs.Retryable {
		t.Fatalf("unexpected attributes: %+v", attrs)
	}
	if got := AttributesOf(Code("NO_SUCH_CODE")); got.Severity != SeverityCritical {
		t.Fatalf("unregistered codes must fall back to UNKNOWN, got %+v", got)
	}
}

func TestRegisterNewCode(t *testing.T) {
	code := Code("KB_CACHE_MISS")
	Register(code, Attributes{Message: "cache miss", Severity: SeverityInfo})
	if attrs := AttributesOf(code); attrs.Message != "cache miss" || attrs.Severity != SeverityInfo {
		t.Fatalf("registered attributes not returned: %+v", attrs)
	}
}

func TestMetadataIsCopied(t *testing.T) {
	err := New(CodeInvalidArgument, "不支持的导出周期", WithMetadata("period", "1year"))
	meta := err.Metadata()
	if meta["period"] != "1year" {
		t.Fatalf("metadata missing: %v", meta)
	}
	meta["period"] = "mutated"
	if err.Metadata()["period"] != "1year" {
		t.Fatalf("Metadata must return a copy")
	}
}
