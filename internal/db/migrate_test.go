package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaDeclaresSessionTables(t *testing.T) {
	s := Schema()

	assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS admin_users")
	assert.Contains(t, s, "username      TEXT NOT NULL UNIQUE")
	assert.Contains(t, s, "token_hash       TEXT NOT NULL UNIQUE")
	assert.Contains(t, s, "CHECK (expires_at > created_at)")
	assert.NotContains(t, strings.ToLower(s), "drop table")
}
