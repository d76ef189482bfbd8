package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskContent(t *testing.T) {
	assert.NoError(t, TaskContent("buy milk"))
	assert.Error(t, TaskContent(""))
	assert.Error(t, TaskContent("   \t"))
}

func TestPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high"} {
		assert.NoError(t, Priority(p))
	}
	assert.Error(t, Priority("urgent"))
	assert.Error(t, Priority(""))
}

func TestCategory(t *testing.T) {
	for _, c := range []string{"general", "work", "personal", "study", "health", "shopping"} {
		assert.NoError(t, Category(c))
	}
	assert.Error(t, Category("misc"))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email(""))
}

func TestSignupField(t *testing.T) {
	assert.Error(t, SignupField("email", "bogus", Email))
	assert.NoError(t, SignupField("email", "user@example.com", Email))
	assert.Error(t, SignupField("username", "", Required))
}
