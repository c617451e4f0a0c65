package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/services"
	"github.com/dmitrijs2005/entrysync/internal/client/syncer"
)

func (a *App) isSignedIn() bool {
	return a.sync.Status().Principal != ""
}

func (a *App) prompt() string {
	return "(" + formatStatus(a.sync.Status()) + ")"
}

// formatStatus renders a status as "alice online idle [unsynced]".
func formatStatus(st models.SyncStatus) string {
	who := st.Principal
	if who == "" {
		who = "signed out"
	}
	net := "offline"
	if st.IsOnline {
		net = "online"
	}
	s := fmt.Sprintf("%s %s %s", who, net, st.State)
	if st.HasUnsyncedEntries {
		s += " [unsynced]"
	}
	if st.SyncAvailable {
		s += " [sync available]"
	}
	return s
}

func (a *App) Add(ctx context.Context, collection, text string) error {
	rec, err := a.records.Create(ctx, collection, []byte(text))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s/%s\n", rec.Collection, rec.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, id, text string) error {
	rec, err := a.records.Update(ctx, id, []byte(text))
	if services.IsNotFound(err) {
		return fmt.Errorf("no record %s", id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s/%s\n", rec.Collection, rec.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	err := a.records.Delete(ctx, id)
	if services.IsNotFound(err) {
		return fmt.Errorf("no record %s", id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

func (a *App) List(ctx context.Context, collection string) error {
	recs, err := a.records.List(ctx, collection)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No records")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOLLECTION\tUPDATED\tSTATE\tDATA")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Collection, formatMillis(r.UpdatedAt), recordState(r), preview(r.Data, 40))
	}
	return w.Flush()
}

func (a *App) Show(ctx context.Context, id string) error {
	r, err := a.records.Get(ctx, id)
	if services.IsNotFound(err) {
		return fmt.Errorf("no record %s", id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:         %s\n", r.ID)
	fmt.Fprintf(a.out, "Collection: %s\n", r.Collection)
	fmt.Fprintf(a.out, "Updated:    %s\n", formatMillis(r.UpdatedAt))
	fmt.Fprintf(a.out, "State:      %s\n", recordState(r))
	fmt.Fprintf(a.out, "Data:\n%s\n", r.Data)
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	err := a.sync.RequestSync(ctx)
	switch {
	case errors.Is(err, syncer.ErrOffline):
		fmt.Fprintln(a.out, "Offline: local changes are kept and will sync later")
		return nil
	case errors.Is(err, syncer.ErrSignedOut):
		return errors.New("sign in first")
	case err != nil:
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Fprintln(a.out, "Synchronized")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.sync.Status()
	fmt.Fprintln(a.out, formatStatus(st))
	if !st.LastSyncAt.IsZero() {
		fmt.Fprintf(a.out, "Last sync: %s\n", st.LastSyncAt.Format(time.DateTime))
	}
	return nil
}

func (a *App) SignIn(ctx context.Context, token string) error {
	principal, err := a.session.SignIn(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", principal)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func recordState(r *models.Record) string {
	switch {
	case r.Dirty && !r.Synced:
		return "new"
	case r.Dirty:
		return "modified"
	default:
		return "synced"
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(time.DateTime)
}

func preview(data []byte, n int) string {
	s := []rune(string(data))
	if len(s) <= n {
		return string(s)
	}
	return string(s[:n-3]) + "..."
}
