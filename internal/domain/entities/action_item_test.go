package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActionItem(t *testing.T) {
	_, err := NewActionItem("   ", "Action:")
	assert.ErrorIs(t, err, ErrEmptyTask)

	item, err := NewActionItem("send the report", "Please send the report.")
	require.NoError(t, err)
	assert.Equal(t, "Please send the report.", item.Context)
	assert.Nil(t, item.Assignee)
	assert.Nil(t, item.Deadline)

	item.WithAssignee("").WithDeadline("")
	assert.Nil(t, item.Assignee)
	assert.Nil(t, item.Deadline)

	item.WithAssignee("Bob Smith").WithDeadline("EOD")
	assert.Equal(t, "Bob Smith", item.AssigneeName())
	assert.Equal(t, "EOD", item.DeadlineValue())
}

func TestActionItem_JSONKeepsAbsentFieldsAsNull(t *testing.T) {
	item, err := NewActionItem("review budget", "Review budget.")
	require.NoError(t, err)

	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"task":"review budget","assignee":null,"deadline":null,"context":"Review budget."}`, string(b))
}
