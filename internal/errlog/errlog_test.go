package errlog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/watchdeck/watchdeck/internal/logger"
)

func newTestFunnel() *Funnel {
	return New(logger.New("error", false))
}

func TestFunnel_ReportFillsCurrentSlot(t *testing.T) {
	f := newTestFunnel()

	entry := f.Report(KindNetwork, "channel refresh failed", errors.New("dial tcp: timeout"))
	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if entry.Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning for network", entry.Severity)
	}
	if entry.Detail != "dial tcp: timeout" {
		t.Errorf("detail = %q", entry.Detail)
	}

	current, ok := f.Current()
	if !ok || current.ID != entry.ID {
		t.Errorf("Current() = %+v, %v; want the reported entry", current, ok)
	}
}

func TestFunnel_NewerReportOverwritesCurrent(t *testing.T) {
	f := newTestFunnel()

	f.Report(KindNetwork, "first", nil)
	second := f.Report(KindPlayback, "second", nil)

	current, _ := f.Current()
	if current.ID != second.ID {
		t.Errorf("current = %s, want the newest report", current.Message)
	}
	if got := len(f.History()); got != 2 {
		t.Errorf("history len = %d, want 2", got)
	}
}

func TestFunnel_ClearCurrentKeepsHistory(t *testing.T) {
	f := newTestFunnel()

	f.Report(KindData, "decode failed", nil)
	f.ClearCurrent()

	if _, ok := f.Current(); ok {
		t.Error("Current() occupied after ClearCurrent")
	}
	if got := len(f.History()); got != 1 {
		t.Errorf("history len = %d after ClearCurrent, want 1", got)
	}
}

func TestFunnel_HistoryIsBoundedNewestFirst(t *testing.T) {
	f := newTestFunnel()

	for i := 0; i < HistoryCap+10; i++ {
		f.Report(KindUnknown, fmt.Sprintf("report %d", i), nil)
	}

	history := f.History()
	if len(history) != HistoryCap {
		t.Fatalf("history len = %d, want cap %d", len(history), HistoryCap)
	}
	if history[0].Message != fmt.Sprintf("report %d", HistoryCap+9) {
		t.Errorf("head = %q, want the newest report", history[0].Message)
	}
	if history[len(history)-1].Message != "report 10" {
		t.Errorf("tail = %q, want the oldest surviving report", history[len(history)-1].Message)
	}
}

func TestFunnel_ClearHistory(t *testing.T) {
	f := newTestFunnel()

	f.Report(KindChannel, "fetch failed", nil)
	f.ClearHistory()

	if len(f.History()) != 0 {
		t.Error("history not empty after ClearHistory")
	}
	if _, ok := f.Current(); ok {
		t.Error("current slot occupied after ClearHistory")
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		kind Kind
		want Severity
	}{
		{KindClipboard, SeverityInfo},
		{KindNetwork, SeverityWarning},
		{KindChannel, SeverityWarning},
		{KindVideoLoad, SeverityError},
		{KindData, SeverityError},
		{KindPlayback, SeverityError},
		{KindUnknown, SeverityError},
	}

	for _, tt := range tests {
		if got := SeverityFor(tt.kind); got != tt.want {
			t.Errorf("SeverityFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
