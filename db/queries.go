package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Run queries

//go:embed sql/insert_run.sql
var InsertRunSQL string

//go:embed sql/select_runs.sql
var SelectRunsSQL string

//go:embed sql/select_run_by_id_prefix.sql
var SelectRunByIDPrefixSQL string

//go:embed sql/delete_run.sql
var DeleteRunSQL string

// Outcome queries

//go:embed sql/insert_outcome.sql
var InsertOutcomeSQL string

//go:embed sql/select_outcomes_by_run.sql
var SelectOutcomesByRunSQL string
