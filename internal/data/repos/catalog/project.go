package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, project *domain.Project) error
	List(dbc dbctx.Context) ([]domain.Project, error)
	GetByID(dbc dbctx.Context, id int64) (*domain.Project, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) Create(dbc dbctx.Context, project *domain.Project) error {
	return dbc.Conn(r.db).Create(project).Error
}

func (r *projectRepo) List(dbc dbctx.Context) ([]domain.Project, error) {
	results := []domain.Project{}
	if err := dbc.Conn(r.db).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) GetByID(dbc dbctx.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	if err := dbc.Conn(r.db).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("projects.get", "project %d not found", id)
		}
		return nil, err
	}
	return &p, nil
}
