package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservation_IsOwnedBy(t *testing.T) {
	r := Reservation{Requester: "Alice"}

	assert.True(t, r.IsOwnedBy("alice"))
	assert.True(t, r.IsOwnedBy(" ALICE "))
	assert.False(t, r.IsOwnedBy("bob"))
}

func TestReservationFields_Apply(t *testing.T) {
	r := Reservation{ID: "id-1", Requester: "alice", ResourceID: "cam1", Date: "2024-05-01", Start: "09:00", End: "10:00", Status: StatusActive}

	updated := ReservationFields{ResourceID: "mic1", Date: "2024-05-02", Start: "11:00", End: "12:00"}.Apply(r)

	assert.Equal(t, "id-1", updated.ID)
	assert.Equal(t, "alice", updated.Requester)
	assert.Equal(t, StatusActive, updated.Status)
	assert.Equal(t, "mic1|2024-05-02", updated.PartitionKey())
	assert.Equal(t, "cam1", r.ResourceID)
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Resource{{ID: "cam1", Name: "Camera A"}, {ID: "mic1", Name: "Microfoon set"}})

	assert.True(t, c.Contains("cam1"))
	assert.False(t, c.Contains("lap9"))
	assert.Equal(t, []Resource{{ID: "cam1", Name: "Camera A"}, {ID: "mic1", Name: "Microfoon set"}}, c.All())

	r, ok := c.Get("mic1")
	assert.True(t, ok)
	assert.Equal(t, "Microfoon set", r.Name)

	assert.True(t, NewCatalog(nil).Contains("anything"))
}
