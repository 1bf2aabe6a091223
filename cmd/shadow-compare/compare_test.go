package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCompareIgnoresLocalisedMessages(t *testing.T) {
	goSrv := serveJSON(http.StatusOK, `{"message":"Success","data":[{"id":1,"amount":10.0}]}`)
	defer goSrv.Close()
	legacy := serveJSON(http.StatusOK, `{"message":"Sucesso","data":[{"id":1,"amount":10}]}`)
	defer legacy.Close()

	cmp := newComparer(goSrv.Client(), goSrv.URL, legacy.URL, []string{"message"})
	res := cmp.compare(target{Method: http.MethodGet, Path: "students", Critical: true})

	require.NoError(t, res.Error)
	assert.True(t, res.StatusMatch)
	assert.True(t, res.BodyMatch)
	assert.False(t, res.breaking())
}

func TestCompareFlagsDataDrift(t *testing.T) {
	goSrv := serveJSON(http.StatusOK, `{"data":[{"balance_classes":2}]}`)
	defer goSrv.Close()
	legacy := serveJSON(http.StatusOK, `{"data":[{"balance_classes":3}]}`)
	defer legacy.Close()

	cmp := newComparer(goSrv.Client(), goSrv.URL, legacy.URL, nil)
	critical := cmp.compare(target{Path: "/statistics", Critical: true})
	assert.True(t, critical.breaking())

	optional := cmp.compare(target{Path: "/statistics"})
	assert.False(t, optional.breaking())
	assert.True(t, optional.differs())

	var out bytes.Buffer
	printReport(&out, []comparison{critical})
	assert.Contains(t, out.String(), "[DIFF]  /statistics")
}

func TestCompareStatusMismatch(t *testing.T) {
	goSrv := serveJSON(http.StatusNotFound, `{"message":"Student not found."}`)
	defer goSrv.Close()
	legacy := serveJSON(http.StatusBadRequest, `{"error":"bad"}`)
	defer legacy.Close()

	res := newComparer(goSrv.Client(), goSrv.URL, legacy.URL, []string{"message"}).compare(target{Path: "/students/0"})
	assert.False(t, res.StatusMatch)
	assert.True(t, res.differs())
}

func TestLoadTargets(t *testing.T) {
	targets, err := loadTargets("")
	require.NoError(t, err)
	assert.Equal(t, defaultTargets, targets)

	path := filepath.Join(t.TempDir(), "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[{"method":"GET","path":"/classes","critical":true}]}`), 0o600))
	targets, err = loadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "/classes", targets[0].Path)

	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(path)
	assert.Error(t, err)
}
