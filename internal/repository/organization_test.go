//go:build integration
// +build integration

package repository

import (
	"testing"

	"account-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrganizationRepositoryTestSuite tests the OrganizationRepository
type OrganizationRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *OrganizationRepository
	factories     *testutils.FactorySet
}

func (suite *OrganizationRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

func (suite *OrganizationRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.CleanTestDB()
}

func (suite *OrganizationRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *OrganizationRepositoryTestSuite) TestCreateAndGetByID() {
	org := suite.factories.Organization.WithName("Acme Corp")

	suite.NoError(suite.repo.Create(org))

	found, err := suite.repo.GetByID(org.ID)
	suite.NoError(err)
	suite.Equal("Acme Corp", found.Name)
}

func (suite *OrganizationRepositoryTestSuite) TestGetByID_NotFound() {
	found, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(found)
}

func TestOrganizationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepositoryTestSuite))
}
