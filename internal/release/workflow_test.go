package release

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type workflowStep struct {
	Name string `yaml:"name"`
	Uses string `yaml:"uses"`
	Run  string `yaml:"run"`
	If   string `yaml:"if"`
}

type workflowPlatform struct {
	OSName string `yaml:"os-name"`
	RunsOn string `yaml:"runs-on"`
	Target string `yaml:"target"`
}

type workflowJob struct {
	Strategy struct {
		Matrix struct {
			Platform []workflowPlatform `yaml:"platform"`
		} `yaml:"matrix"`
	} `yaml:"strategy"`
	Steps []workflowStep `yaml:"steps"`
}

type workflow struct {
	On struct {
		Release struct {
			Types    []string `yaml:"types"`
			Branches []string `yaml:"branches"`
		} `yaml:"release"`
	} `yaml:"on"`
	Env  map[string]string      `yaml:"env"`
	Jobs map[string]workflowJob `yaml:"jobs"`
}

func loadWorkflow(t *testing.T) workflow {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", ".github", "workflows", "release.yml"))
	require.NoError(t, err)
	var wf workflow
	require.NoError(t, yaml.Unmarshal(b, &wf))
	return wf
}

func TestWorkflowTrigger(t *testing.T) {
	wf := loadWorkflow(t)
	assert.Contains(t, wf.On.Release.Types, "created")
	assert.Contains(t, wf.On.Release.Branches, "release/*")
	assert.Equal(t, DefaultBinaryName, wf.Env[EnvCrateName])
}

func TestWorkflowMatrixMatchesTargets(t *testing.T) {
	wf := loadWorkflow(t)
	job, ok := wf.Jobs["release"]
	require.True(t, ok)
	platforms := job.Strategy.Matrix.Platform
	require.Len(t, platforms, len(Targets))

	for i, p := range platforms {
		tg, ok := FindTarget(p.Target)
		require.True(t, ok, "unknown target %q", p.Target)
		assert.Equal(t, Targets[i], tg)
		assert.Equal(t, tg.OSName+"-"+tg.Arch, p.OSName)
		assert.NotEmpty(t, p.RunsOn)
	}
}

func TestWorkflowPublishesOnlyOnReleaseTags(t *testing.T) {
	wf := loadWorkflow(t)
	steps := wf.Jobs["release"].Steps
	var publish *workflowStep
	for i := range steps {
		if strings.HasPrefix(steps[i].Uses, "softprops/action-gh-release") {
			publish = &steps[i]
		}
	}
	require.NotNil(t, publish)
	assert.Contains(t, publish.If, "startsWith(github.ref, 'refs/tags/v')")
	assert.Contains(t, publish.If, "github.ref == 'refs/tags/test-release'")
}
