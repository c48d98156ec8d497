package policy

import (
	"net/http"
	"testing"

	"bellezza-backend/models"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type unowned struct{}

func TestCanAccess(t *testing.T) {
	ownerID := uuid.New()
	owner := utils.Principal{UserID: ownerID, Authenticated: true}
	stranger := utils.Principal{UserID: uuid.New(), Authenticated: true}
	staff := utils.Principal{UserID: uuid.New(), IsStaff: true, Authenticated: true}

	client := &models.Client{UserID: &ownerID}
	appointment := &models.Appointment{Client: client}
	review := &models.Review{Client: client}
	orphan := &models.Appointment{Client: &models.Client{}}

	mutating := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

	for _, record := range []any{client, appointment, review, orphan, unowned{}} {
		for _, p := range []utils.Principal{utils.Anonymous, owner, stranger, staff} {
			assert.True(t, CanAccess(p, record, http.MethodGet))
			assert.True(t, CanAccess(p, record, http.MethodHead))
		}
		for _, m := range mutating {
			assert.True(t, CanAccess(staff, record, m))
			assert.False(t, CanAccess(utils.Anonymous, record, m))
			assert.False(t, CanAccess(stranger, record, m))
		}
	}

	for _, m := range mutating {
		assert.True(t, CanAccess(owner, client, m))
		assert.True(t, CanAccess(owner, appointment, m))
		assert.True(t, CanAccess(owner, review, m))
		assert.False(t, CanAccess(owner, orphan, m), "record without owner is staff-only")
		assert.False(t, CanAccess(owner, unowned{}, m))
	}
}

func TestCanWriteCatalog(t *testing.T) {
	assert.True(t, CanWriteCatalog(utils.Anonymous, http.MethodGet))
	assert.False(t, CanWriteCatalog(utils.Principal{Authenticated: true}, http.MethodPost))
	assert.True(t, CanWriteCatalog(utils.Principal{IsStaff: true, Authenticated: true}, http.MethodDelete))
}
