package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtledger/internal/statement"
)

var testTime = time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)

func testLedger(t *testing.T) *statement.Ledger {
	t.Helper()
	l, err := statement.Parse([]string{
		"01 Mar CR Salary, \"March\" 100.00 100.00\n31 Feb Impossible 5.00 95.00\n",
		"",
	}, statement.Options{Year: 2025, Policy: statement.PolicyExplicitMarker})
	require.NoError(t, err)
	return l
}

func TestFromLedger(t *testing.T) {
	l := testLedger(t)
	entries := FromLedger(l, "march.pdf", testTime)
	require.Len(t, entries, 3)

	assert.Equal(t, KindRun, entries[0].Kind)
	assert.Equal(t, l.RunID(), entries[0].RunID)
	assert.Equal(t, "policy=explicit-marker year=2025 matched=2 records=1 dropped=1", entries[0].Detail)

	kinds := []string{entries[1].Kind, entries[2].Kind}
	assert.ElementsMatch(t, []string{string(statement.DiagEmptyPage), string(statement.DiagMalformedDate)}, kinds)
	for _, e := range entries {
		assert.Equal(t, "march.pdf", e.Document)
		assert.Equal(t, testTime, e.Timestamp)
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, FromLedger(testLedger(t), "march.pdf", testTime)))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "parse-log.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{{Timestamp: testTime, RunID: "a", Kind: KindRun}}))
	require.NoError(t, Append(dir, []Entry{{Timestamp: testTime, RunID: "b", Kind: KindRun}}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].RunID)
	assert.Equal(t, "b", entries[1].RunID)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "parse-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestRoundTrip(t *testing.T) {
	original := Entry{
		Timestamp: testTime,
		RunID:     "run-1",
		Document:  "march.pdf",
		Kind:      string(statement.DiagMalformedDate),
		Page:      2,
		Line:      14,
		Text:      `31 Feb "Impossible", 5.00`,
		Detail:    "parsing date",
	}
	got, err := UnmarshalEntry(MarshalEntry(original))
	require.NoError(t, err)
	assert.Equal(t, original, got)

	row := MarshalEntry(Entry{Timestamp: testTime, Kind: KindRun})
	assert.Equal(t, "", row[colPage])
	assert.Equal(t, "", row[colLine])
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))

	require.NoError(t, os.WriteFile(Path(dir), []byte("a,b,c,d,e,f,g,h\n"), 0o644))
	_, err := Read(dir)
	assert.ErrorContains(t, err, "unexpected parse log header")

	require.NoError(t, os.WriteFile(Path(dir), []byte(Header+"\nbad,,,,,,,\n"), 0o644))
	_, err = Read(dir)
	assert.ErrorContains(t, err, "line 2")

	require.NoError(t, os.WriteFile(Path(dir), nil, 0o644))
	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"x"})
	assert.ErrorContains(t, err, "expected 8 fields")

	_, err = UnmarshalEntry([]string{"nope", "", "", "", "", "", "", ""})
	assert.ErrorContains(t, err, "parsing timestamp")

	_, err = UnmarshalEntry([]string{testTime.Format(time.RFC3339), "", "", "", "p", "", "", ""})
	assert.ErrorContains(t, err, "parsing page")
}
