package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/core/services"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProjectRepository
	service  portssvc.ProjectSvcFacade
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProjectRepository)
	suite.service = services.NewProjectService(suite.mockRepo)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateProjectRequest{
		Name:       "Riverside Tower",
		ClientName: "Acme Estates",
		Location:   "Pune",
	}

	suite.mockRepo.On("SaveProject", ctx, mock.AnythingOfType("domain.Project")).Return(nil).Once()

	project, err := suite.service.CreateProject(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(project)
	suite.NotEmpty(project.ProjectID)
	suite.Equal(req.Name, project.Name)
	suite.Equal(domain.ProjectActive, project.Status)
	suite.Equal(userID, project.CreatedBy)
	suite.WithinDuration(time.Now(), project.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestGetProjectByID_NotFound() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockRepo.On("FindProjectByID", ctx, projectID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetProjectByID(ctx, projectID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProjectServiceTestSuite) TestListProjects_Success() {
	ctx := context.Background()

	suite.mockRepo.On("ListProjects", ctx).Return([]domain.Project{
		{ProjectID: uuid.NewString(), Name: "Hill View Flats"},
		{ProjectID: uuid.NewString(), Name: "Riverside Tower"},
	}, nil).Once()

	projects, err := suite.service.ListProjects(ctx)

	suite.Require().NoError(err)
	suite.Len(projects, 2)
}

func TestProjectService(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
