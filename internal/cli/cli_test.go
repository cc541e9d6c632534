package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rcliao/staff-directory/internal/bookmark"
	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/stats"
	"github.com/rcliao/staff-directory/internal/store"
)

const usersJSON = `{"users": [
  {"id": 1, "firstName": "Emily", "lastName": "Johnson", "email": "emily.johnson@x.dummyjson.com", "phone": "+81 965-431-3024", "age": 28,
   "address": {"address": "626 Main Street", "city": "Phoenix", "state": "Mississippi", "country": "United States"}},
  {"id": 2, "firstName": "Michael", "lastName": "Williams", "email": "michael.williams@x.dummyjson.com", "phone": "+49 258-627-6644", "age": 35,
   "address": {"address": "385 Fifth Street", "city": "Houston", "state": "Alabama", "country": "United States"}},
  {"id": 3, "firstName": "Sophia", "lastName": "Brown", "email": "sophia.brown@x.dummyjson.com", "phone": "+81 210-652-2785", "age": 42,
   "address": {"address": "1642 Ninth Street", "city": "Washington", "state": "Alabama", "country": "United States"}}
]}`

// resetFlags restores every flag to its default so one Execute does not
// leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(RootCmd)
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute(), "args %v", args)
	return buf.String()
}

func runJSON(t *testing.T, v interface{}, args ...string) {
	t.Helper()
	out := run(t, args...)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func syncedDB(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usersJSON))
	}))
	t.Cleanup(srv.Close)

	db := filepath.Join(t.TempDir(), "directory.db")
	var snap store.Snapshot
	runJSON(t, &snap, "sync", "--db", db, "--url", srv.URL+"/users", "--seed", "7")
	require.Equal(t, 3, snap.Count)
	require.NotEmpty(t, snap.ID)
	return db
}

// putBookmarks overwrites the saved bookmark set behind the CLI's back.
func putBookmarks(t *testing.T, db, payload string) {
	t.Helper()
	s, err := store.NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, s.Put(t.Context(), bookmark.DefaultKey, []byte(payload)))
	require.NoError(t, s.Close())
}

func TestSyncListGet(t *testing.T) {
	db := syncedDB(t)

	var items []listItem
	runJSON(t, &items, "list", "--db", db)
	require.Len(t, items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
	for _, it := range items {
		assert.NoError(t, it.Employee.Validate())
		assert.False(t, it.Bookmarked)
	}

	runJSON(t, &items, "list", "--db", db, "--search", "SOPHIA")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ID)

	runJSON(t, &items, "list", "--db", db, "--limit", "2")
	assert.Len(t, items, 2)

	var d employeeDetail
	runJSON(t, &d, "get", "--db", db, "2")
	assert.Equal(t, "Michael", d.Employee.FirstName)
	assert.Equal(t, 6, len(d.Employee.PerformanceHistory))
	require.NotNil(t, d.Profile.Latest)
	assert.Equal(t, "Jun", d.Profile.Latest.Month)

	text := run(t, "list", "--db", db, "--format", "text")
	assert.Contains(t, text, "Emily Johnson")
	assert.Contains(t, text, "3 employee(s)")
}

func TestBookmarkLifecycle(t *testing.T) {
	db := syncedDB(t)

	var res bookmarkResult
	runJSON(t, &res, "bookmark", "add", "--db", db, "2")
	assert.Equal(t, bookmarkResult{OK: true, ID: 2, Bookmarked: true, Count: 1}, res)

	runJSON(t, &res, "bookmark", "toggle", "--db", db, "3")
	assert.True(t, res.Bookmarked)
	assert.Equal(t, 2, res.Count)

	var bl bookmarkList
	runJSON(t, &bl, "bookmark", "list", "--db", db)
	require.Len(t, bl.Employees, 2)
	assert.Equal(t, 2, bl.Employees[0].ID, "bookmark order")
	assert.Equal(t, 3, bl.Employees[1].ID)
	assert.Equal(t, 2, bl.Summary.Total)

	var items []listItem
	runJSON(t, &items, "list", "--db", db, "--bookmarked")
	require.Len(t, items, 2)
	assert.True(t, items[0].Bookmarked)

	var summary stats.DashboardSummary
	runJSON(t, &summary, "stats", "--db", db)
	assert.Equal(t, 3, summary.TotalEmployees)
	assert.Equal(t, 2, summary.Bookmarked)

	runJSON(t, &res, "bookmark", "rm", "--db", db, "3")
	assert.False(t, res.Bookmarked)
	assert.Equal(t, 1, res.Count)

	var cleared map[string]interface{}
	runJSON(t, &cleared, "bookmark", "clear", "--db", db)
	assert.Equal(t, float64(1), cleared["cleared"])

	runJSON(t, &bl, "bookmark", "list", "--db", db)
	assert.Empty(t, bl.Employees)
}

func TestEphemeralBookmarksAreNotSaved(t *testing.T) {
	db := syncedDB(t)

	var res bookmarkResult
	runJSON(t, &res, "bookmark", "add", "--db", db, "--ephemeral", "1")
	assert.True(t, res.Bookmarked)

	var bl bookmarkList
	runJSON(t, &bl, "bookmark", "list", "--db", db)
	assert.Empty(t, bl.Employees)
}

func TestBookmarkListReportsMissingIDs(t *testing.T) {
	db := syncedDB(t)
	putBookmarks(t, db, "[42,3,1]")

	var bl bookmarkList
	runJSON(t, &bl, "bookmark", "list", "--db", db)
	require.Len(t, bl.Employees, 2)
	assert.Equal(t, 3, bl.Employees[0].ID, "bookmark order")
	assert.Equal(t, 1, bl.Employees[1].ID)
	assert.Equal(t, []int{42}, bl.Missing)
	assert.Equal(t, 2, bl.Summary.Total)
}

func TestBookmarkToggleClearsStaleID(t *testing.T) {
	db := syncedDB(t)
	putBookmarks(t, db, "[42]")

	var res bookmarkResult
	runJSON(t, &res, "bookmark", "toggle", "--db", db, "42")
	assert.Equal(t, bookmarkResult{OK: true, ID: 42, Bookmarked: false, Count: 0}, res)

	var bl bookmarkList
	runJSON(t, &bl, "bookmark", "list", "--db", db)
	assert.Empty(t, bl.Missing)
	assert.Empty(t, bl.Employees)
}

type stalledKV struct {
	*store.MemoryKV
	release chan struct{}
}

func (k stalledKV) Put(ctx context.Context, key string, payload []byte) error {
	<-k.release
	return k.MemoryKV.Put(ctx, key, payload)
}

func TestCloseBookmarksLogsPendingWrites(t *testing.T) {
	old := closeTimeout
	closeTimeout = 10 * time.Millisecond
	defer func() { closeTimeout = old }()

	kv := stalledKV{MemoryKV: store.NewMemoryKV(), release: make(chan struct{})}
	bm := bookmark.Open(t.Context(), kv)
	bm.Add(1)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	closeBookmarks(ctx, bm)
	assert.Contains(t, buf.String(), "bookmark writes still pending at exit (1 bookmarks)")
	assert.Contains(t, buf.String(), context.DeadlineExceeded.Error())

	close(kv.release)
	require.NoError(t, bm.Close(context.Background()))
	b, err := kv.Get(context.Background(), bookmark.DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[1]", string(b))
}

func TestLoadRecordsWrapsOnce(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = loadRecords(t.Context(), s)
	require.ErrorIs(t, err, store.ErrNoSnapshot)
	assert.Equal(t, 1, strings.Count(err.Error(), "load employees"))
	assert.Equal(t, "error: list: load employees: no employee snapshot (run sync or import first)", errLine("list", err))
}

func TestAnalytics(t *testing.T) {
	db := syncedDB(t)

	var a stats.Analytics
	runJSON(t, &a, "analytics", "--db", db)
	assert.Equal(t, 3, a.TotalEmployees)
	require.NotNil(t, a.TopDepartment)
	assert.Len(t, a.RatingDistribution, 5)

	total := 0
	for _, d := range a.Departments {
		total += d.Count
	}
	assert.Equal(t, 3, total)

	var none analyticsView
	runJSON(t, &none, "analytics", "--db", db, "--rating", "0")
	assert.Equal(t, 0, none.TotalEmployees)
	assert.Nil(t, none.TopDepartment)
	assert.Empty(t, none.Departments)

	// Facet options come from the whole snapshot, not the filtered subset.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, none.Facets.Ratings)
	var listed []listItem
	runJSON(t, &listed, "list", "--db", db)
	var depts []string
	for _, it := range listed {
		if !slices.Contains(depts, it.Department) {
			depts = append(depts, it.Department)
		}
	}
	assert.Equal(t, depts, none.Facets.Departments)

	text := run(t, "analytics", "--db", db, "--format", "text")
	assert.Contains(t, text, "Filter by rating: 1 2 3 4 5")
	assert.Contains(t, text, "Filter by department: "+strings.Join(depts, ", "))
}

func TestExportImport(t *testing.T) {
	db := syncedDB(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "staff.json")
	run(t, "export", "--db", db, "--out", jsonPath)

	xlsxPath := filepath.Join(dir, "staff.xlsx")
	run(t, "export", "--db", db, "--as", "xlsx", "--out", xlsxPath, "--search", "emily")
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	f.Close()

	csvOut := run(t, "export", "--db", db, "--as", "csv")
	assert.Equal(t, 4, strings.Count(csvOut, "\n"))

	other := filepath.Join(t.TempDir(), "other.db")
	var res importResult
	runJSON(t, &res, "import", "--db", other, jsonPath)
	assert.True(t, res.OK)
	assert.Equal(t, 3, res.Imported)

	var orig, copied []listItem
	runJSON(t, &orig, "list", "--db", db)
	runJSON(t, &copied, "list", "--db", other)
	assert.Equal(t, orig, copied)

	var info store.Info
	runJSON(t, &info, "info", "--db", other)
	assert.Equal(t, 3, info.Employees)
	require.NotNil(t, info.Snapshot)
	assert.Equal(t, "import:"+jsonPath, info.Snapshot.Source)

	text := run(t, "info", "--db", other, "--format", "text")
	assert.Contains(t, text, "Employees:  3")
}

func TestImportFromStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "directory.db")

	e := model.Employee{
		ID: 9, FirstName: "Ava", LastName: "Taylor", Email: "ava@example.com",
		Department: "Design", Rating: 4,
		Projects: []string{"Mobile App Redesign"},
		Feedback: []model.Feedback{{ID: 1, Author: "Alex Brown", Rating: 5, Comment: "Great", Date: "2026-05-01"}},
	}
	for _, m := range model.HistoryMonths {
		e.PerformanceHistory = append(e.PerformanceHistory, model.PerformanceEntry{Month: m, Rating: 4.5, ProjectCount: 1})
	}
	b, err := json.Marshal([]model.Employee{e})
	require.NoError(t, err)

	RootCmd.SetIn(bytes.NewReader(b))
	defer RootCmd.SetIn(os.Stdin)

	var res importResult
	runJSON(t, &res, "import", "--db", db)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, "import:stdin", res.Snapshot.Source)
}
