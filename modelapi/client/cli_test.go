package client

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/fake"
	"github.com/twitter/modelcheck/scenario"
)

func tempFile(t *testing.T, pattern, content string) string {
	f, err := ioutil.TempFile("", pattern)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func execCLI(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cl, err := NewSimpleCLIClient(scenario.DefaultRegistry(), out)
	if err != nil {
		t.Fatal(err)
	}
	cl.(*simpleCLIClient).SetArgs(args)
	err = cl.Exec()
	return out.String(), err
}

func TestRunScenarioAgainstFake(t *testing.T) {
	local, err := fake.StartLocal(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer local.Stop()
	fixture := tempFile(t, "dummy-cls-model", "PK\x05\x06")
	defer os.Remove(fixture)

	out, err := execCLI(t, "run_scenario", "--api_host", local.RESTURL, "--grpc_addr", local.GRPCAddr,
		"--fixture", fixture, "--log_level", "error")
	if err != nil {
		t.Fatalf("run_scenario failed: %v\n%s", err, out)
	}
	for _, want := range []string{"█ " + scenario.UpdateModelGroup, "✓ " + scenario.DeleteCheck, "✓ 23 ✗ 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary is missing %q:\n%s", want, out)
		}
	}
}

func TestLoadTestAgainstFake(t *testing.T) {
	local, err := fake.StartLocal(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer local.Stop()
	fixture := tempFile(t, "dummy-cls-model", "PK\x05\x06")
	defer os.Remove(fixture)
	statsFile := tempFile(t, "model_load_test", "")
	defer os.Remove(statsFile)

	out, err := execCLI(t, "load_test", "--api_host", local.RESTURL, "--grpc_addr", local.GRPCAddr,
		"--fixture", fixture, "--log_level", "error", "--vus", "2", "--iterations", "4", "--stats_file", statsFile)
	if err != nil {
		t.Fatalf("load_test failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ 92 ✗ 0") || !strings.Contains(out, "iterations.................: 4 in") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExitCodes(t *testing.T) {
	fixture := tempFile(t, "dummy-cls-model", "PK\x05\x06")
	defer os.Remove(fixture)
	config := tempFile(t, "modelcheck.yaml", "dial_timeout: 200ms\n")
	defer os.Remove(config)
	badConfig := tempFile(t, "modelcheck.yaml", "no_such_key: 1\n")
	defer os.Remove(badConfig)

	cases := map[string]struct {
		args []string
		code mcerror.ExitCode
	}{
		"bad api host": {
			[]string{"run_scenario", "--api_host", "ftp://nowhere", "--fixture", fixture}, mcerror.ConfigFailureExitCode},
		"missing fixture": {
			[]string{"run_scenario", "--fixture", "/does/not/exist.zip"}, mcerror.ConfigFailureExitCode},
		"unknown scenario": {
			[]string{"run_scenario", "nope", "--fixture", fixture}, mcerror.ConfigFailureExitCode},
		"unknown config key": {
			[]string{"run_scenario", "--config", badConfig}, mcerror.ConfigFailureExitCode},
		"unreachable grpc": {
			[]string{"run_scenario", "--config", config, "--grpc_addr", "127.0.0.1:1", "--fixture", fixture},
			mcerror.ConnectFailureExitCode},
	}
	for name, c := range cases {
		_, err := execCLI(t, append(c.args, "--log_level", "error")...)
		if code := mcerror.ExitCodeOf(err, mcerror.GenericFailureExitCode); code != c.code {
			t.Errorf("%s: expected exit code %d, got %d (%v)", name, c.code, code, err)
		}
	}
}

func TestChecksFailedExitCode(t *testing.T) {
	local, err := fake.StartLocal(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer local.Stop()
	fixture := tempFile(t, "dummy-cls-model", "PK\x05\x06")
	defer os.Remove(fixture)
	// The fake stamps users/local-user, any other expected owner fails the user checks.
	config := tempFile(t, "modelcheck.yaml", "owner: users/someone-else\n")
	defer os.Remove(config)

	out, err := execCLI(t, "run_scenario", "--config", config, "--api_host", local.RESTURL,
		"--grpc_addr", local.GRPCAddr, "--fixture", fixture, "--log_level", "error")
	if code := mcerror.ExitCodeOf(err, mcerror.GenericFailureExitCode); code != mcerror.ChecksFailedExitCode {
		t.Fatalf("expected checks failed, got %d (%v)", code, err)
	}
	if !strings.Contains(out, "✗ POST /v1alpha/models:multipart (multipart) task cls response model.user") {
		t.Fatalf("summary should show the failed user check:\n%s", out)
	}
	if local.Store.Len() != 0 {
		t.Fatal("failed checks must not skip the delete")
	}
}
