package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

// stdinPath selects standard input as the event source.
const stdinPath = "-"

// eventFileError reports an event file that cannot be read or decoded.
type eventFileError struct {
	Path string
	Err  error
}

func (e *eventFileError) Error() string {
	return fmt.Sprintf("invalid event file %s: %v", e.Path, e.Err)
}

func (e *eventFileError) Unwrap() error {
	return e.Err
}

// readEvent loads a CloudFormation custom resource event from a YAML or JSON
// file, or from stdin when path is "-". The field names are those of the
// CloudFormation request (RequestType, ResourceProperties, ...).
//
// Events replayed by hand usually lack a request id; a random one is
// assigned so that log lines can still be correlated.
func readEvent(path string, stdin io.Reader) (cfn.Event, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return cfn.Event{}, &eventFileError{Path: path, Err: err}
	}

	var event cfn.Event
	if err := yaml.Unmarshal(data, &event); err != nil {
		return cfn.Event{}, &eventFileError{Path: path, Err: err}
	}
	if event.RequestType == "" {
		return cfn.Event{}, &eventFileError{Path: path, Err: fmt.Errorf("RequestType is required")}
	}

	if event.RequestID == "" {
		event.RequestID = uuid.New().String()
	}
	return event, nil
}
