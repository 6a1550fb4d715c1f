// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/tokenmaster/client"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/model"
)

// openMenu selects the n-th menu entry (0-based) from the main screen.
func openMenu(t *testing.T, m mainModel, n int) mainModel {
	t.Helper()
	for i := 0; i < n; i++ {
		m = keys(t, m, "down")
	}
	return keys(t, m, "enter")
}

// fillForm types tok into the create form, ending on the submit button.
func fillForm(t *testing.T, m mainModel, tok model.Token) mainModel {
	t.Helper()
	for _, v := range tok.Fields() {
		if v != "" {
			m = keys(t, m, v)
		}
		m = keys(t, m, "tab")
	}
	return m
}

func TestCreateForm_SubmitClearsAndRefreshes(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 1)
	if m.state != addView {
		t.Fatalf("expected add view, got %d", m.state)
	}

	m = fillForm(t, m, tokA)
	if m.form.focusIndex != len(m.form.inputs) {
		t.Fatalf("expected submit focus, got %d", m.form.focusIndex)
	}
	m = keys(t, m, "enter")

	calls := api.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected GET, POST, GET; got %+v", calls)
	}
	if calls[1].Method != http.MethodPost || calls[1].Token != tokA {
		t.Fatalf("expected POST with %+v, got %+v", tokA, calls[1])
	}
	if calls[2].Method != http.MethodGet {
		t.Fatalf("expected refresh after create, got %+v", calls[2])
	}
	for i, in := range m.form.inputs {
		if in.Value() != "" {
			t.Fatalf("input %d not cleared: %q", i, in.Value())
		}
	}
	if len(m.session.Tokens()) != 1 {
		t.Fatalf("expected refreshed session to hold the new token")
	}
}

func TestCreateForm_SendsValuesAsTyped(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 1)

	typed := tokA
	typed.ProjectName = " proj1"
	typed.Token = "abc123 "
	typed.UserName = "   "
	m = fillForm(t, m, typed)
	m = keys(t, m, "enter")

	if m.alert != nil {
		t.Fatalf("whitespace is a value, got alert %q", m.alert.Message())
	}
	calls := api.Calls()
	if len(calls) < 2 || calls[1].Method != http.MethodPost {
		t.Fatalf("expected a POST after the initial GET, got %+v", calls)
	}
	if calls[1].Token != typed {
		t.Fatalf("POST changed the entered values: got %+v want %+v", calls[1].Token, typed)
	}
}

func TestCreateForm_MissingFieldSendsNothing(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 1)

	partial := tokA
	partial.UserName = ""
	m = fillForm(t, m, partial)
	m = keys(t, m, "enter")

	if n := countCalls(api, http.MethodPost); n != 0 {
		t.Fatalf("expected no POST, got %d", n)
	}
	if m.alert == nil || m.alert.Message() != i18n.T("alert.missing_fields") {
		t.Fatalf("expected missing-fields alert")
	}
	if m.form.inputs[0].Value() != "proj1" {
		t.Fatalf("values must be kept after a validation error")
	}
}

func TestCreateForm_FailureKeepsValues(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	api.Err = errors.New("500 internal")
	m = openMenu(t, m, 1)
	m = fillForm(t, m, tokA)
	m = keys(t, m, "enter")

	if m.alert == nil || m.alert.Message() != i18n.T("alert.add_failed") {
		t.Fatalf("expected retry alert")
	}
	if got := m.form.token(); got != tokA {
		t.Fatalf("values lost after failure: %+v", got)
	}
	if n := countCalls(api, http.MethodGet); n != 1 {
		t.Fatalf("failed create must not refresh, got %d GETs", n)
	}
}

func TestCreateForm_DatePickerFillsExpiry(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 1)
	for i := 0; i < expiryInput; i++ {
		m = keys(t, m, "tab")
	}
	m = keys(t, m, "2030-06-15", "ctrl+d")
	if m.form.datePicker == nil {
		t.Fatalf("ctrl+d should open the date picker on the expiry field")
	}
	m = keys(t, m, "right", "right", "up", "enter")
	if got := m.form.inputs[expiryInput].Value(); got != "2030-06-16" {
		t.Fatalf("expected picked date, got %q", got)
	}
}

func TestDeleteForm_ConfirmDeletesIndex(t *testing.T) {
	api := client.NewFake(tokA, tokB, tokC)
	m := start(t, api)
	m = openMenu(t, m, 3)
	if m.state != deleteView {
		t.Fatalf("expected delete view")
	}

	m = keys(t, m, "3", "enter")
	if m.del.confirm == nil {
		t.Fatalf("expected confirmation dialog")
	}
	if n := countCalls(api, http.MethodDelete); n != 0 {
		t.Fatalf("nothing may be deleted before confirming")
	}
	m = keys(t, m, "left", "enter")

	var deletes []client.Call
	for _, c := range api.Calls() {
		if c.Method == http.MethodDelete {
			deletes = append(deletes, c)
		}
	}
	if len(deletes) != 1 || deletes[0].Index != 2 {
		t.Fatalf("expected DELETE line=2, got %+v", deletes)
	}
	if n := countCalls(api, http.MethodGet); n != 2 {
		t.Fatalf("expected refresh after delete, got %d GETs", n)
	}
	if m.del.input.Value() != "" {
		t.Fatalf("row input should be cleared")
	}
	if len(m.session.Tokens()) != 2 {
		t.Fatalf("expected 2 tokens after delete")
	}
}

func TestDeleteForm_DeclineSendsNothing(t *testing.T) {
	api := client.NewFake(tokA)
	m := start(t, api)
	m = openMenu(t, m, 3)
	m = keys(t, m, "1", "enter", "enter")
	if m.del.confirm != nil {
		t.Fatalf("dialog should close")
	}
	if n := countCalls(api, http.MethodDelete); n != 0 {
		t.Fatalf("declined delete sent a request")
	}
}

func TestDeleteForm_InvalidRowSendsNothing(t *testing.T) {
	for _, input := range []string{"0", "-2", "abc"} {
		api := client.NewFake(tokA)
		m := start(t, api)
		m = openMenu(t, m, 3)
		m = keys(t, m, input, "enter")
		if m.alert == nil || m.alert.Message() != i18n.T("alert.invalid_row") {
			t.Fatalf("%q: expected invalid-row alert", input)
		}
		if m.del.confirm != nil {
			t.Fatalf("%q: no confirmation expected", input)
		}
		if n := countCalls(api, http.MethodDelete); n != 0 {
			t.Fatalf("%q: expected no DELETE", input)
		}
	}
}

func TestDeleteForm_BackendFailureAlerts(t *testing.T) {
	api := client.NewFake(tokA)
	m := start(t, api)
	m = openMenu(t, m, 3)
	m = keys(t, m, "9", "enter", "y")
	if m.alert == nil || m.alert.Message() != i18n.T("alert.delete_failed") {
		t.Fatalf("expected delete failure alert")
	}
}

func TestImport_WithoutFileSendsNothing(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 0)
	if m.state != importView {
		t.Fatalf("expected import view")
	}
	m = keys(t, m, "tab", "enter")
	if m.alert == nil || m.alert.Message() != i18n.T("alert.no_file") {
		t.Fatalf("expected no-file alert")
	}
	for _, c := range api.Calls() {
		if c.Filename != "" {
			t.Fatalf("upload sent without a file: %+v", c)
		}
	}
	if m.session.State() != core.ListEmpty {
		t.Fatalf("list state must not change without an upload")
	}
}

func TestImport_UploadMarksLoadedAndRefreshes(t *testing.T) {
	api := client.NewFake()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "tokens.csv")
	content := "proj1,abc123,read,u1,Alice,2025-01-01\nproj2,ghi789,admin,u3,Carol,2026-12-31\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	m := newMainModel(Options{API: api, StartDir: dir})
	m = pump(t, m, m.Init())
	m = openMenu(t, m, 0)

	// Picker lists ., .., tokens.csv.
	m = keys(t, m, "enter", "down", "down", "enter")
	if m.imp.picker != nil || m.imp.selected != csvPath {
		t.Fatalf("expected %q selected, got %q", csvPath, m.imp.selected)
	}
	m = keys(t, m, "enter")

	var upload *client.Call
	calls := api.Calls()
	for i := range calls {
		if calls[i].Filename != "" {
			upload = &calls[i]
		}
	}
	if upload == nil || upload.Filename != "tokens.csv" || string(upload.Body) != content {
		t.Fatalf("unexpected upload: %+v", upload)
	}
	if m.session.State() != core.ListLoaded {
		t.Fatalf("expected list loaded after import")
	}
	if m.state != menuView {
		t.Fatalf("expected return to the main screen")
	}
	if n := countCalls(api, http.MethodGet); n != 2 {
		t.Fatalf("expected refresh after import, got %d GETs", n)
	}
	v := m.View()
	if !strings.Contains(v, "abc123") || !strings.Contains(v, "ghi789") {
		t.Fatalf("expected table after import, got:\n%s", v)
	}
}

func TestImport_FailureKeepsSelection(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	api.Err = errors.New("bad gateway")
	m = openMenu(t, m, 0)
	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte("a,b,c,d,e,f\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.imp.selected = path
	m = keys(t, m, "tab", "enter")
	if m.alert == nil || m.alert.Message() != i18n.T("alert.upload_failed") {
		t.Fatalf("expected upload failure alert")
	}
	if m.imp.selected != path {
		t.Fatalf("selection lost after failure")
	}
	if m.session.State() != core.ListEmpty {
		t.Fatalf("failed upload must not flip the list state")
	}
}

func TestUpdatePanel_LoadEditSubmit(t *testing.T) {
	api := client.NewFake(tokA, tokB, tokC)
	m := start(t, api)
	m = openMenu(t, m, 2)
	if m.state != updateView {
		t.Fatalf("expected update view")
	}

	m = keys(t, m, "proj1", "enter")
	var get client.Call
	for _, c := range api.Calls() {
		if c.Method == http.MethodGet && c.ProjectName != "" {
			get = c
		}
	}
	if get.ProjectName != "proj1" {
		t.Fatalf("expected GET ?projectName=proj1, got %+v", api.Calls())
	}
	if len(m.update.tokens) != 2 || m.update.focus != updateFocusGrid {
		t.Fatalf("expected 2 editable tokens with grid focus")
	}

	// Row 1, permission: "read" -> "write".
	m = keys(t, m, "right", "enter")
	if !m.update.editing {
		t.Fatalf("expected inline editor")
	}
	for i := 0; i < len("read"); i++ {
		m = keys(t, m, "backspace")
	}
	m = keys(t, m, "write", "enter")
	if m.update.tokens[0].Permission != "write" {
		t.Fatalf("edit not applied: %+v", m.update.tokens[0])
	}
	if n := countCalls(api, http.MethodPut); n != 0 {
		t.Fatalf("editing must stay local")
	}

	m = keys(t, m, "ctrl+s")
	var put *client.Call
	calls := api.Calls()
	for i := range calls {
		if calls[i].Method == http.MethodPut {
			put = &calls[i]
		}
	}
	if put == nil || put.ProjectName != "proj1" || len(put.Tokens) != 2 || put.Tokens[0].Permission != "write" {
		t.Fatalf("unexpected PUT: %+v", put)
	}
	last := calls[len(calls)-1]
	if last.Method != http.MethodGet || last.ProjectName != "" {
		t.Fatalf("expected full refresh after update, got %+v", last)
	}
}

func TestUpdatePanel_EmptyProjectShowsHint(t *testing.T) {
	api := client.NewFake(tokA)
	m := start(t, api)
	m = openMenu(t, m, 2)
	m = keys(t, m, "nope", "enter")
	if !m.update.loaded || len(m.update.tokens) != 0 {
		t.Fatalf("expected an empty loaded list")
	}
	if !strings.Contains(m.View(), i18n.T("update.no_tokens")) {
		t.Fatalf("expected no-tokens hint")
	}
}

func TestUpdatePanel_SubmitFailureAlerts(t *testing.T) {
	api := client.NewFake(tokA)
	m := start(t, api)
	m = openMenu(t, m, 2)
	m = keys(t, m, "proj1", "enter")
	api.Err = errors.New("boom")
	m = keys(t, m, "ctrl+s")
	if m.alert == nil || m.alert.Message() != i18n.T("alert.update_failed") {
		t.Fatalf("expected update failure alert")
	}
}

func TestExport_NothingToExportAlerts(t *testing.T) {
	api := client.NewFake()
	m := start(t, api)
	m = openMenu(t, m, 4)
	if m.state != menuView {
		t.Fatalf("export must not open with an empty list")
	}
	if m.alert == nil || m.alert.Message() != i18n.T("alert.nothing_to_export") {
		t.Fatalf("expected nothing-to-export alert")
	}
}

func TestExport_WritesDefaultFile(t *testing.T) {
	api := client.NewFake(tokA, tokB)
	dir := t.TempDir()
	m := newMainModel(Options{API: api, StartDir: dir})
	m = pump(t, m, m.Init())
	m = openMenu(t, m, 4)
	if m.state != exportView {
		t.Fatalf("expected export view")
	}
	m = keys(t, m, "enter")

	data, err := os.ReadFile(filepath.Join(dir, core.DefaultExportFilename))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "proj1,abc123,read,u1,Alice,2025-01-01\nproj1,def456,write,u2,Bob,2025-06-30"
	if string(data) != want {
		t.Fatalf("unexpected export:\n%s", data)
	}
	if m.state != menuView || !strings.Contains(m.status, core.DefaultExportFilename) {
		t.Fatalf("expected status after export, got %q", m.status)
	}
}

func TestExport_CancelWritesNothing(t *testing.T) {
	api := client.NewFake(tokA)
	dir := t.TempDir()
	m := newMainModel(Options{API: api, StartDir: dir, ExportFilename: "out.csv"})
	m = pump(t, m, m.Init())
	m = openMenu(t, m, 4)
	if got := m.export.picker.GetFilename(); got != "out.csv" {
		t.Fatalf("expected suggested name, got %q", got)
	}
	m = keys(t, m, "esc")
	if m.state != menuView {
		t.Fatalf("expected return to menu")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("cancel wrote files: %v", entries)
	}
}
