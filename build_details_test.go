package schemagraph

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.NotEmpty(t, v)
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"), "unexpected version %q", v)
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "schemagraph/"+Version(), UserAgent())
	assert.NotContains(t, UserAgent(), " ")
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, info, label)
	}
	assert.Contains(t, info, Commit())
	assert.Contains(t, info, BuildTime())
}
