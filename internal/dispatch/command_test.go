package dispatch

import (
	"encoding/json"
	"reflect"
	"testing"

	"dynoctl/internal/dyno"
	"dynoctl/internal/kineto"
)

func TestCommandNames(t *testing.T) {
	tests := []struct {
		command Command
		want    string
	}{
		{StatusCommand{}, "status"},
		{VersionCommand{}, "version"},
		{TraceCommand{}, "gputrace"},
		{DcgmPauseCommand{}, "dcgm-pause"},
		{DcgmResumeCommand{}, "dcgm-resume"},
	}
	for _, tt := range tests {
		if got := tt.command.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestTraceCommandPayload(t *testing.T) {
	command := TraceCommand{
		Config: kineto.Config{
			LogFile: "/tmp/trace.json",
			Trigger: kineto.DurationTrigger{StartTime: 1000, DurationMS: 42},
		},
		JobID:        7,
		PIDs:         []int64{0},
		ProcessLimit: 3,
	}

	raw, err := json.Marshal(command.Payload())
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	want := `{"fn":"setKinetOnDemandRequest","config":"ACTIVITIES_LOG_FILE=/tmp/trace.json\nPROFILE_START_TIME=1000\nACTIVITIES_DURATION_MSECS=42\nPROFILE_REPORT_INPUT_SHAPES=false\nPROFILE_PROFILE_MEMORY=false\nPROFILE_WITH_STACK=false\nPROFILE_WITH_FLOPS=false\nPROFILE_WITH_MODULES=false","job_id":7,"pids":[0],"process_limit":3}`
	if string(raw) != want {
		t.Fatalf("payload = %s, want %s", raw, want)
	}
}

func TestTraceCommandFinishDerivesOutputFiles(t *testing.T) {
	command := TraceCommand{
		Config: kineto.Config{
			LogFile: "/tmp/trace.json",
			Trigger: kineto.DurationTrigger{DurationMS: 500},
		},
	}

	var outcome Outcome
	doc := dyno.NewDocument([]byte(`{"processesMatched":[100,200]}`))
	if err := command.Finish(doc, &outcome); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	if outcome.NoMatch {
		t.Fatal("NoMatch should be false when processes matched")
	}
	if !reflect.DeepEqual(outcome.MatchedPIDs, []int64{100, 200}) {
		t.Fatalf("unexpected pids: %v", outcome.MatchedPIDs)
	}
	wantFiles := []string{"/tmp/trace_100.json", "/tmp/trace_200.json"}
	if !reflect.DeepEqual(outcome.OutputFiles, wantFiles) {
		t.Fatalf("unexpected output files: %v", outcome.OutputFiles)
	}
}

func TestTraceCommandFinishNoMatch(t *testing.T) {
	command := TraceCommand{
		Config: kineto.Config{
			LogFile: "/tmp/trace.json",
			Trigger: kineto.DurationTrigger{DurationMS: 500},
		},
	}

	var outcome Outcome
	doc := dyno.NewDocument([]byte(`{"processesMatched":[]}`))
	if err := command.Finish(doc, &outcome); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	if !outcome.NoMatch {
		t.Fatal("expected NoMatch for empty processesMatched")
	}
	if len(outcome.OutputFiles) != 0 {
		t.Fatalf("expected no output files, got %v", outcome.OutputFiles)
	}
}

func TestTraceCommandFinishRejectsMissingField(t *testing.T) {
	var outcome Outcome
	doc := dyno.NewDocument([]byte(`{"status":"ok"}`))
	if err := (TraceCommand{}).Finish(doc, &outcome); err == nil {
		t.Fatal("expected error when processesMatched is missing")
	}
}

func TestSimpleCommandPayloads(t *testing.T) {
	tests := []struct {
		command Command
		want    string
	}{
		{StatusCommand{}, `{"fn":"getStatus"}`},
		{VersionCommand{}, `{"fn":"getVersion"}`},
		{DcgmPauseCommand{DurationS: 300}, `{"fn":"dcgmProfPause","duration_s":300}`},
		{DcgmResumeCommand{}, `{"fn":"dcgmProfResume"}`},
	}
	for _, tt := range tests {
		raw, err := json.Marshal(tt.command.Payload())
		if err != nil {
			t.Fatalf("marshal %s payload: %v", tt.command.Name(), err)
		}
		if string(raw) != tt.want {
			t.Errorf("%s payload = %s, want %s", tt.command.Name(), raw, tt.want)
		}
	}
}
