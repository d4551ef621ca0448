// Package shell implements the interactive menu loop: a small state machine
// driven by one blocking read per prompt.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/natserract/sfcli/pkg/export"
	sfcore "github.com/natserract/sfcli/pkg/salesforce/core"
	"go.uber.org/zap"
)

// state enumerates the shell's positions in the menu flow. Transitions are
// driven purely by sequential user selections; Exit is the only terminal
// state.
type state int

const (
	stateStart state = iota
	stateAuthenticated
	stateActionMenu
	stateObjectMenu
	stateCollectingInput
	stateExecuting
	stateRendering
	stateExit
)

type action int

const (
	actionNone action = iota
	actionQuery
	actionCreate
	actionUpdate
	actionDelete
	actionExport
)

var actionLabels = map[action]string{
	actionQuery:  "Query records",
	actionCreate: "Create record",
	actionUpdate: "Update record",
	actionDelete: "Delete record",
	actionExport: "Export to CSV",
}

const defaultQueryLimit = 10

// pendingOp accumulates the selections and free-text input for one menu
// action between CollectingInput and Executing.
type pendingOp struct {
	action action
	object sfcore.ObjectType
	limit  int
	id     string
	fields map[string]string
	path   string
}

// Shell runs the menu loop against a record API client.
type Shell struct {
	client   sfcore.CoreClient
	exporter *export.CSVExporter
	in       *bufio.Reader
	out      io.Writer
	logger   *zap.Logger

	state   state
	pending pendingOp

	result    []sfcore.Record
	resultMsg string
	execErr   error
	fatalErr  error

	now func() time.Time
}

func New(client sfcore.CoreClient, exporter *export.CSVExporter, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		client:   client,
		exporter: exporter,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logger,
		state:    stateStart,
		now:      time.Now,
	}
}

// Run drives the state machine until Exit. Only startup failures (auth) are
// returned; action-level errors are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for s.state != stateExit {
		s.state = s.step(ctx, s.state)
	}
	return s.fatalErr
}

func (s *Shell) step(ctx context.Context, current state) state {
	switch current {
	case stateStart:
		return s.stepStart(ctx)
	case stateAuthenticated:
		return s.stepAuthenticated()
	case stateActionMenu:
		return s.stepActionMenu()
	case stateObjectMenu:
		return s.stepObjectMenu()
	case stateCollectingInput:
		return s.stepCollectingInput()
	case stateExecuting:
		return s.stepExecuting(ctx)
	case stateRendering:
		return s.stepRendering()
	default:
		return stateExit
	}
}

func (s *Shell) stepStart(ctx context.Context) state {
	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out, "Salesforce CLI")
	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "[*] Authenticating to Salesforce...")

	if _, err := s.client.Authenticate(ctx); err != nil {
		s.fatalErr = err
		return stateExit
	}
	return stateAuthenticated
}

func (s *Shell) stepAuthenticated() state {
	fmt.Fprintln(s.out, "    Connected successfully")
	return stateActionMenu
}

func (s *Shell) stepActionMenu() state {
	s.pending = pendingOp{}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.Repeat("-", 60))
	fmt.Fprintln(s.out, "  ACTIONS:")
	for i := actionQuery; i <= actionExport; i++ {
		fmt.Fprintf(s.out, "    %d. %s\n", i, actionLabels[i])
	}
	fmt.Fprintln(s.out, "    6. Exit")

	choice, err := s.readLine("\n  Select action (1-6): ")
	if err != nil {
		// Input stream closed; treat like choosing Exit.
		return stateExit
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > 6 {
		fmt.Fprintln(s.out, "  Invalid selection.")
		return stateActionMenu
	}
	if n == 6 {
		fmt.Fprintln(s.out, "\n  Goodbye!")
		return stateExit
	}

	s.pending.action = action(n)
	return stateObjectMenu
}

func (s *Shell) stepObjectMenu() state {
	fmt.Fprintln(s.out, "\n  Available objects:")
	for i, obj := range sfcore.SupportedObjects {
		fmt.Fprintf(s.out, "    %d. %s\n", i+1, obj)
	}

	choice, err := s.readLine(fmt.Sprintf("\n  Select object (1-%d): ", len(sfcore.SupportedObjects)))
	if err != nil {
		return stateExit
	}

	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(sfcore.SupportedObjects) {
		fmt.Fprintln(s.out, "  Invalid selection. Try again.")
		return stateObjectMenu
	}

	s.pending.object = sfcore.SupportedObjects[n-1]
	return stateCollectingInput
}

func (s *Shell) stepCollectingInput() state {
	switch s.pending.action {
	case actionQuery:
		return s.collectQuery()
	case actionCreate:
		return s.collectCreate()
	case actionUpdate:
		return s.collectUpdate()
	case actionDelete:
		return s.collectDelete()
	case actionExport:
		return s.collectExport()
	default:
		return stateActionMenu
	}
}

func (s *Shell) collectQuery() state {
	raw, err := s.readLine("  Record limit (default 10): ")
	if err != nil {
		return stateExit
	}

	limit := defaultQueryLimit
	if raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			fmt.Fprintln(s.out, "  Invalid limit. Try again.")
			return stateCollectingInput
		}
		limit = n
	}

	s.pending.limit = limit
	return stateExecuting
}

func (s *Shell) collectCreate() state {
	fmt.Fprintf(s.out, "\n  Enter details for new %s:\n", s.pending.object)

	fields := make(map[string]string)
	for _, prompt := range s.pending.object.CreatePrompts() {
		value, err := s.readLine(fmt.Sprintf("    %s: ", prompt.Label))
		if err != nil {
			return stateExit
		}
		if value != "" {
			fields[prompt.Field] = value
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(s.out, "  No data entered. Aborting.")
		return stateActionMenu
	}

	s.pending.fields = fields
	return stateExecuting
}

func (s *Shell) collectUpdate() state {
	id, err := s.readLine(fmt.Sprintf("\n  Enter %s record ID to update: ", s.pending.object))
	if err != nil {
		return stateExit
	}
	if id == "" {
		fmt.Fprintln(s.out, "  No ID entered. Aborting.")
		return stateActionMenu
	}

	fmt.Fprintln(s.out, "  Enter fields to update (leave blank to skip):")

	fields := make(map[string]string)
	for _, field := range s.pending.object.UpdateFields() {
		value, err := s.readLine(fmt.Sprintf("    %s: ", field))
		if err != nil {
			return stateExit
		}
		if value != "" {
			fields[field] = value
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(s.out, "  No updates entered. Aborting.")
		return stateActionMenu
	}

	s.pending.id = id
	s.pending.fields = fields
	return stateExecuting
}

func (s *Shell) collectDelete() state {
	id, err := s.readLine(fmt.Sprintf("\n  Enter %s record ID to delete: ", s.pending.object))
	if err != nil {
		return stateExit
	}
	if id == "" {
		fmt.Fprintln(s.out, "  No ID entered. Aborting.")
		return stateActionMenu
	}

	confirm, err := s.readLine(fmt.Sprintf("  Confirm delete %s? (yes/no): ", id))
	if err != nil {
		return stateExit
	}
	if !strings.EqualFold(confirm, "yes") {
		fmt.Fprintln(s.out, "  Delete cancelled.")
		return stateActionMenu
	}

	s.pending.id = id
	return stateExecuting
}

func (s *Shell) collectExport() state {
	defaultPath := export.DefaultFilename(s.pending.object, s.now())
	path, err := s.readLine(fmt.Sprintf("  Output file (default %s): ", defaultPath))
	if err != nil {
		return stateExit
	}
	if path == "" {
		path = defaultPath
	}

	s.pending.path = path
	return stateExecuting
}

func (s *Shell) stepExecuting(ctx context.Context) state {
	s.result = nil
	s.resultMsg = ""
	s.execErr = nil

	s.logger.Debug("Dispatching action",
		zap.String("action", actionLabels[s.pending.action]),
		zap.String("object", s.pending.object.String()))

	switch s.pending.action {
	case actionQuery:
		fields := s.pending.object.QueryFields()
		fmt.Fprintf(s.out, "\n  Executing: %s\n", sfcore.BuildQuery(s.pending.object, fields, s.pending.limit))
		s.result, s.execErr = s.client.Query(ctx, s.pending.object, fields, s.pending.limit)

	case actionCreate:
		var id string
		id, s.execErr = s.client.Create(ctx, s.pending.object, s.pending.fields)
		if s.execErr == nil {
			s.resultMsg = fmt.Sprintf("%s created successfully!\n    Record ID: %s", s.pending.object, id)
		}

	case actionUpdate:
		s.execErr = s.client.Update(ctx, s.pending.object, s.pending.id, s.pending.fields)
		if s.execErr == nil {
			s.resultMsg = fmt.Sprintf("%s %s updated successfully!", s.pending.object, s.pending.id)
		}

	case actionDelete:
		s.execErr = s.client.Delete(ctx, s.pending.object, s.pending.id)
		if s.execErr == nil {
			s.resultMsg = fmt.Sprintf("%s %s deleted successfully!", s.pending.object, s.pending.id)
		}

	case actionExport:
		columns := s.pending.object.ExportFields()
		var records []sfcore.Record
		records, s.execErr = s.client.Query(ctx, s.pending.object, columns, 0)
		if s.execErr == nil {
			s.execErr = s.exporter.Export(s.pending.path, columns, records)
		}
		if s.execErr == nil {
			s.resultMsg = fmt.Sprintf("Exported %d records to %s", len(records), s.pending.path)
		}
	}

	return stateRendering
}

func (s *Shell) stepRendering() state {
	if s.execErr != nil {
		s.printError(s.execErr)
		return stateActionMenu
	}

	if s.pending.action == actionQuery {
		renderRecords(s.out, s.pending.object.QueryFields(), s.result)
	}
	if s.resultMsg != "" {
		fmt.Fprintf(s.out, "\n  ✓ %s\n", s.resultMsg)
	}

	return stateActionMenu
}

// printError is the single place recoverable errors surface. Remote code
// and detail are included when the platform provided them.
func (s *Shell) printError(err error) {
	var apiErr *sfcore.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			fmt.Fprintf(s.out, "\n  ✗ Error (%s): %s: %s\n", apiErr.Kind, apiErr.Code, apiErr.Message)
		} else {
			fmt.Fprintf(s.out, "\n  ✗ Error (%s): %s\n", apiErr.Kind, apiErr.Message)
		}
		return
	}
	fmt.Fprintf(s.out, "\n  ✗ Error: %v\n", err)
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
