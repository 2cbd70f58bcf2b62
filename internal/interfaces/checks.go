package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/database/books"
	"github.com/mrlokans/shelf/internal/database/tags"
	"github.com/mrlokans/shelf/internal/database/trash"
	"github.com/mrlokans/shelf/internal/http"
	"github.com/mrlokans/shelf/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.HighlightStore = (*books.Repository)(nil)
var _ http.TagStore = (*tags.Repository)(nil)
var _ http.TrashStore = (*trash.Repository)(nil)

// =============================================================================
// Health and Background Jobs
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ scheduler.Purger = (*trash.Repository)(nil)
