package core

import (
	"strings"
	"testing"
	"time"

	"github.com/databoard/databoard/internal/config"
)

const sampleCSV = `Order ID,Customer Name,Region,Sales,Order Date
1,Alice,East,100.50,2023-01-15
2,Bob,West,200,2023-02-03
3,Carol,East,49.50,2023-02-20
4,Dave,,250,2023-03-01
5,Eve,South,75,
`

func testConfig() config.Config {
	return config.Config{
		Dataset: config.DatasetConfig{
			MaxCategoricalCardinality: 100,
		},
		Engine: config.EngineConfig{
			TopN:        5,
			SampleLimit: 1000,
			SampleSeed:  1,
			PreviewRows: 400,
		},
		Session: config.SessionConfig{
			TTL:           2 * time.Hour,
			SweepInterval: 10 * time.Minute,
			MaxSessions:   100,
		},
	}
}

func newTestSession(t *testing.T, svc *Service) *Session {
	t.Helper()
	sess, err := svc.CreateSession("orders.csv", []byte(sampleCSV), ".csv")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return sess
}

func TestCreateSession(t *testing.T) {
	svc := NewService(testConfig())
	sess := newTestSession(t, svc)

	if sess.ID == "" {
		t.Error("CreateSession() returned empty session ID")
	}
	if sess.FileName != "orders.csv" {
		t.Errorf("FileName = %q, want %q", sess.FileName, "orders.csv")
	}
	if got := sess.Dataset.Rows(); got != 5 {
		t.Errorf("Rows() = %d, want 5", got)
	}
	if len(sess.Partition.Numeric) == 0 {
		t.Fatal("partition has no numeric columns")
	}
	if sess.Partition.Numeric[len(sess.Partition.Numeric)-1] != "sales" {
		t.Errorf("numeric columns = %v, want sales present", sess.Partition.Numeric)
	}
	if svc.Count() != 1 {
		t.Errorf("Count() = %d, want 1", svc.Count())
	}
}

func TestCreateSessionInvalidFile(t *testing.T) {
	svc := NewService(testConfig())

	if _, err := svc.CreateSession("report.pdf", []byte("x"), ".pdf"); err == nil {
		t.Error("CreateSession() with .pdf error = nil, want unsupported file type")
	} else if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("CreateSession() error = %v, want unsupported file type", err)
	}
}

func TestCreateSessionLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Session.MaxSessions = 1
	svc := NewService(cfg)

	newTestSession(t, svc)
	if _, err := svc.CreateSession("b.csv", []byte(sampleCSV), ".csv"); err != ErrSessionLimit {
		t.Errorf("CreateSession() error = %v, want ErrSessionLimit", err)
	}
}

func TestGetAndDelete(t *testing.T) {
	svc := NewService(testConfig())
	sess := newTestSession(t, svc)

	got, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("Get() ID = %q, want %q", got.ID, sess.ID)
	}

	if _, err := svc.Get("not-a-session"); err == nil {
		t.Error("Get() with unknown ID error = nil, want unknown session")
	} else if !strings.Contains(err.Error(), "unknown session") {
		t.Errorf("Get() error = %v, want unknown session", err)
	}

	if err := svc.Delete(sess.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("Count() after delete = %d, want 0", svc.Count())
	}
	if err := svc.Delete(sess.ID); err == nil {
		t.Error("Delete() twice error = nil, want unknown session")
	}
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	svc := NewService(testConfig())
	sess := newTestSession(t, svc)

	svc.mu.Lock()
	svc.sessions[sess.ID].LastSeen = time.Now().Add(-3 * time.Hour)
	svc.mu.Unlock()

	svc.sweep()

	if _, err := svc.Get(sess.ID); err == nil {
		t.Error("Get() after sweep error = nil, want unknown session")
	}
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	svc := NewService(testConfig())
	sess := newTestSession(t, svc)

	svc.mu.Lock()
	svc.sessions[sess.ID].LastSeen = time.Now().Add(-3 * time.Hour)
	svc.mu.Unlock()

	if _, err := svc.Get(sess.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	svc.sweep()

	if _, err := svc.Get(sess.ID); err != nil {
		t.Errorf("Get() after refreshed sweep error = %v, want session alive", err)
	}
}
