package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
)

func (suite *TestSuiteStandard) TestIDSetOnCreate() {
	centre := suite.createTestCentre(models.ResponsibilityCentre{Name: "Fleet Maintenance"})
	suite.Assert().NotEqual(uuid.Nil, centre.ID, "ID is not set on create")
}

func (suite *TestSuiteStandard) TestTimestampsUTCAfterFind() {
	centre := suite.createTestCentre(models.ResponsibilityCentre{Name: "Fleet Maintenance"})

	var loaded models.ResponsibilityCentre
	err := models.DB.First(&loaded, "id = ?", centre.ID).Error
	suite.Assert().Nil(err)

	suite.Assert().Equal(time.UTC, loaded.CreatedAt.Location(), "CreatedAt is not UTC after find")
	suite.Assert().Equal(time.UTC, loaded.UpdatedAt.Location(), "UpdatedAt is not UTC after find")
}
