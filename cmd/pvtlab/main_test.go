package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/storage"
)

func TestParseAssignments(t *testing.T) {
	s, err := parseAssignments([]string{"Rs=500", " Yo = 0.85"}, nil)
	require.NoError(t, err)
	assert.Equal(t, pvt.Snapshot{"Rs": 500, "Yo": 0.85}, s)

	for _, bad := range []string{"Rs", "Rs=abc"} {
		_, err := parseAssignments([]string{bad}, nil)
		assert.Error(t, err, bad)
	}
}

func TestComponentAssignments(t *testing.T) {
	s, err := parseAssignments([]string{"1=12", "3=40"}, componentKey(mixture.MassKey))
	require.NoError(t, err)
	assert.Equal(t, pvt.Snapshot{"mass_1": 12, "mass_3": 40}, s)

	for _, bad := range []string{"0=1", "6=1", "x=1"} {
		_, err := parseAssignments([]string{bad}, componentKey(mixture.DensityKey))
		assert.Error(t, err, bad)
	}
}

func TestFormatSnapshot(t *testing.T) {
	assert.Equal(t, "Pb=2000 Yg=0.7", formatSnapshot(pvt.Snapshot{"Yg": 0.7, "Pb": 2000}))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func storedInputs(t *testing.T, db, id string) pvt.Snapshot {
	t.Helper()
	st, err := storage.OpenSQL(db, "default")
	require.NoError(t, err)
	defer st.Close()
	s, err := st.Snapshot(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestSweepOverridesStayOutOfStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "session.db")
	out := filepath.Join(dir, "sweep.csv")

	_, err := execute(t, "--db", db, "session", "set", "oil-density-basic", "Rs=800")
	require.NoError(t, err)

	_, err = execute(t, "--db", db, "sweep", "oil-density-basic",
		"--param", "Yo", "--points", "5", "--range", "0.8:0.9",
		"--set", "Rs=1500", "--set", "Bo=1.3",
		"--format", "csv", "--out", out)
	require.NoError(t, err)

	assert.Equal(t, pvt.Snapshot{"Rs": 800}, storedInputs(t, db, "oil-density-basic"))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Yo", "Yg", "Rs", "Bo", "Result", "reason"}, rows[0])
	assert.Equal(t, "0.80000", rows[1][0])
	assert.Equal(t, "0.90000", rows[5][0])
	assert.Equal(t, "1500.00000", rows[1][2])
	assert.Equal(t, "1.30000", rows[1][3])
}

func TestEvalLiveFailureReturnsError(t *testing.T) {
	db := filepath.Join(t.TempDir(), "session.db")

	out, err := execute(t, "--db", db, "eval", "oil-density-pressure", "--set", "P=100")
	require.Error(t, err)
	assert.Equal(t, pvt.KindDomainInvalid, pvt.KindOf(err))
	assert.Contains(t, out, "DomainInvalid")
	assert.Empty(t, storedInputs(t, db, "oil-density-pressure"))

	out, err = execute(t, "--db", db, "eval", "oil-density-pressure")
	require.NoError(t, err)
	assert.Contains(t, out, "Result")
}

func TestSweepRejectsBadRange(t *testing.T) {
	_, err := execute(t, "sweep", "oil-density-basic", "--param", "Rs", "--range", "-5:100")
	assert.Equal(t, pvt.KindDomainInvalid, pvt.KindOf(err))

	_, err = execute(t, "sweep", "oil-density-basic", "--range", "100")
	assert.Error(t, err)
}
