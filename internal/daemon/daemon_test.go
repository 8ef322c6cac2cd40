package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/infra/sqlite"
)

type fakePuller struct {
	logs   []domain.ActivityLog
	err    error
	called bool
}

func (f *fakePuller) Pull(ctx context.Context) ([]domain.ActivityLog, error) {
	f.called = true
	return f.logs, f.err
}

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRestoreFromReplicaSeedsEmptyDB(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	remote := []domain.ActivityLog{{
		Date:   "2025-03-01",
		Counts: map[domain.ActivityType]int{domain.ActContacts: 4},
	}}
	p := &fakePuller{logs: remote}

	got, err := restoreFromReplica(ctx, db, p, nil)
	if err != nil {
		t.Fatalf("restoreFromReplica: %v", err)
	}
	if len(got) != 1 || got[0].Date != "2025-03-01" {
		t.Fatalf("restored = %+v, want the remote snapshot", got)
	}

	persisted, err := db.LoadLogs(ctx)
	if err != nil {
		t.Fatalf("LoadLogs: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Count(domain.ActContacts) != 4 {
		t.Errorf("persisted = %+v, want the restored snapshot on disk", persisted)
	}
}

func TestRestoreFromReplicaKeepsLocalHistory(t *testing.T) {
	db := openTestDB(t)
	local := []domain.ActivityLog{{
		Date:   "2025-03-02",
		Counts: map[domain.ActivityType]int{domain.ActVideosSent: 2},
	}}
	p := &fakePuller{logs: []domain.ActivityLog{{Date: "2024-01-01"}}}

	got, err := restoreFromReplica(context.Background(), db, p, local)
	if err != nil {
		t.Fatalf("restoreFromReplica: %v", err)
	}
	if p.called {
		t.Error("pulled despite existing local history")
	}
	if len(got) != 1 || got[0].Date != "2025-03-02" {
		t.Errorf("restored = %+v, want local state untouched", got)
	}
}

func TestRestoreFromReplicaEmptyRemote(t *testing.T) {
	db := openTestDB(t)
	p := &fakePuller{}

	got, err := restoreFromReplica(context.Background(), db, p, nil)
	if err != nil {
		t.Fatalf("restoreFromReplica: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("restored = %+v, want empty for a first-run device", got)
	}
}

func TestRestoreFromReplicaPullError(t *testing.T) {
	db := openTestDB(t)
	p := &fakePuller{err: errors.New("cluster unreachable")}

	if _, err := restoreFromReplica(context.Background(), db, p, nil); err == nil {
		t.Error("err = nil, want pull failure surfaced")
	}
}

func TestPushNowWithoutSync(t *testing.T) {
	d := &Daemon{}
	if err := d.PushNow(context.Background()); !errors.Is(err, domain.ErrSyncDisabled) {
		t.Errorf("err = %v, want ErrSyncDisabled", err)
	}
}
