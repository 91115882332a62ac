package service

import (
	"context"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/importer"
	"github.com/netbadge-ctrl/okboard/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

// NewImportService builds the seed importer. The whole file is written in
// one transaction, so a failing record leaves the database untouched.
func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	seed := importer.ConvertSchema(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		for i := range seed.Users {
			if err := users.Upsert(ctx, &seed.Users[i]); err != nil {
				return fmt.Errorf("importing user %q: %w", seed.Users[i].Name, err)
			}
		}

		okrs := repository.NewSQLiteOkrRepo(tx)
		for _, set := range seed.OkrSets {
			if err := okrs.ReplaceSet(ctx, set); err != nil {
				return fmt.Errorf("importing okr period %q: %w", set.PeriodID, err)
			}
		}

		projects := repository.NewSQLiteProjectRepo(tx)
		for _, p := range seed.Projects {
			if err := projects.Create(ctx, p); err != nil {
				return fmt.Errorf("importing project %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		UserCount:    len(seed.Users),
		OkrSetCount:  len(seed.OkrSets),
		ProjectCount: len(seed.Projects),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
