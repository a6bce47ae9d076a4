package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

type stubClassService struct {
	class   *models.Class
	classes []*models.Class
	err     error
}

func (s *stubClassService) AddClass(_ context.Context, _, _ string) (*models.Class, error) {
	return s.class, s.err
}

func (s *stubClassService) GetClasses(_ context.Context) ([]*models.Class, error) {
	return s.classes, s.err
}

type stubClassroomService struct {
	classroom  *models.PrivateClassroom
	classrooms []*models.PrivateClassroom
	err        error
}

func (s *stubClassroomService) CreatePrivateClassroom(_ context.Context, _ *dto.CreatePrivateClassroomRequest) (*models.PrivateClassroom, error) {
	return s.classroom, s.err
}

func (s *stubClassroomService) GetPrivateClassrooms(_ context.Context, _, _ int64) ([]*models.PrivateClassroom, error) {
	return s.classrooms, s.err
}

func (s *stubClassroomService) GetUserPrivateClassrooms(_ context.Context, _, _ int64) ([]*models.PrivateClassroom, error) {
	return s.classrooms, s.err
}

func newClassRouter(classSvc *stubClassService, classroomSvc *stubClassroomService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewClassController(classSvc, classroomSvc, zerolog.Nop())
	router.POST("/addClass", controller.AddClass)
	router.POST("/fetchClass", controller.FetchClasses)
	router.POST("/createPrivateClassroom", controller.CreatePrivateClassroom)
	router.POST("/getPrivateClassrooms", controller.GetPrivateClassrooms)
	return router
}

func TestAddClass(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := newClassRouter(&stubClassService{class: &models.Class{ID: 1, Classname: "Math"}}, &stubClassroomService{})
		w := doJSON(router, http.MethodPost, "/addClass", `{"classname":"Math","desc":"Algebra and geometry"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Class created successfully", responseMessage(t, w))
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newClassRouter(&stubClassService{}, &stubClassroomService{})
		w := doJSON(router, http.MethodPost, "/addClass", `{"classname":"Math"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Classname and description are required", responseMessage(t, w))
	})
}

func TestFetchClassesBareArray(t *testing.T) {
	router := newClassRouter(&stubClassService{classes: []*models.Class{
		{ID: 1, Classname: "Math", Classcode: 1001},
	}}, &stubClassroomService{})

	w := doJSON(router, http.MethodPost, "/fetchClass", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var classes []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &classes))
	require.Len(t, classes, 1)
	assert.Equal(t, "Math", classes[0]["classname"])
}

func TestCreatePrivateClassroomDuplicate(t *testing.T) {
	router := newClassRouter(&stubClassService{}, &stubClassroomService{err: apperrors.ErrClassroomAlreadyExists})

	body := `{"userid":1,"useremail":"alice@test.com","classroomid":10,"privateclassroomname":"Math Group","privateclassroompassword":"pass"}`
	w := doJSON(router, http.MethodPost, "/createPrivateClassroom", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Private classroom already exists", responseMessage(t, w))
}

func TestGetPrivateClassroomsNotFound(t *testing.T) {
	router := newClassRouter(&stubClassService{}, &stubClassroomService{
		err: apperrors.NewNotFoundError("No private classrooms found for the given classroom ID and user ID"),
	})

	w := doJSON(router, http.MethodPost, "/getPrivateClassrooms", `{"classroomid":10,"userid":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No private classrooms found for the given classroom ID and user ID", responseMessage(t, w))
}
