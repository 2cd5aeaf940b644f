package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/models"
	"github.com/rcbudget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCentresCreate() {
	centre := suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{Name: "Fleet Maintenance", Note: "East region"})

	assert.Equal(suite.T(), "Fleet Maintenance", centre.Data.Name)
	assert.Equal(suite.T(), "East region", centre.Data.Note)
	assert.NotEqual(suite.T(), uuid.Nil, centre.Data.ID)
}

func (suite *TestSuiteStandard) TestCentresCreateDuplicateName() {
	_ = suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{Name: "Fleet Maintenance"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/responsibility-centres", v1.ResponsibilityCentreEditable{Name: "Fleet Maintenance"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrResponsibilityCentreNameNotUnique.Error(), response.Error)
}

func (suite *TestSuiteStandard) TestCentresCreateInvalidBody() {
	tests := []struct {
		name string
		body string
	}{
		{"Broken JSON", `{ "name": "Turn off, dear valve" `},
		{"Missing name", `{ "note": "A centre cannot exist without a name" }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/responsibility-centres", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCentresGetAll() {
	for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
		_ = suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{Name: name})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/responsibility-centres", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ResponsibilityCentreListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Sorted by name
	if assert.Len(suite.T(), response.Data, 3) {
		assert.Equal(suite.T(), "Alpha", response.Data[0].Name)
		assert.Equal(suite.T(), "Bravo", response.Data[1].Name)
		assert.Equal(suite.T(), "Charlie", response.Data[2].Name)
	}
}

func (suite *TestSuiteStandard) TestCentresGetSingle() {
	centre := suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing centre", centre.Data.ID.String(), http.StatusOK},
		{"No centre with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/responsibility-centres/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCentresUpdate() {
	centre := suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{Name: "Fleet Maintenance"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/responsibility-centres/%s", centre.Data.ID), map[string]any{
		"note": "Now covers the west region, too",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ResponsibilityCentreResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	// Only the fields in the body change.
	assert.Equal(suite.T(), "Fleet Maintenance", updated.Data.Name)
	assert.Equal(suite.T(), "Now covers the west region, too", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestCentresDelete() {
	centre := suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{})

	url := fmt.Sprintf("http://example.com/v1/responsibility-centres/%s", centre.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCentresOptions() {
	centre := suite.createTestCentre(suite.T(), v1.ResponsibilityCentreEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/responsibility-centres", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/responsibility-centres/%s", centre.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

// TestCentresDBClosed verifies that database errors are reported as
// internal server errors.
func (suite *TestSuiteStandard) TestCentresDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/responsibility-centres", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), response.Error, models.ErrGeneral.Error())
}
