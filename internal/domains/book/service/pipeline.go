package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

// CreatePipeline: normalize -> rules -> ISBN conflict -> insert
type CreatePipeline struct {
	store   repository.Store
	mutator recordMutator
}

func NewCreatePipeline(store repository.Store) *CreatePipeline {
	return &CreatePipeline{store: store, mutator: recordMutator{now: time.Now}}
}

func (p *CreatePipeline) Run(ctx context.Context, raw model.RawBook) (*model.Book, error) {
	// STEP 1: Normalize
	fields, err := NormalizeForCreate(raw)
	if err != nil {
		return nil, err
	}

	// STEP 2: Field rules
	if err := ValidateCreateRules(fields); err != nil {
		return nil, err
	}

	// STEP 3+4: Conflict check + insert trong cùng transaction
	var created *model.Book
	err = p.store.Atomically(ctx, func(tx repository.Tx) error {
		if err := resolveCreateConflicts(ctx, tx, fields); err != nil {
			return err
		}
		book, err := p.mutator.create(ctx, tx, fields)
		if err != nil {
			return err
		}
		created = book
		return nil
	})
	if err != nil {
		return nil, persistenceFailure(err, func(cause error) *model.BookError {
			return model.Duplicate(cause)
		})
	}

	log.Info().Int64("book_id", created.ID).Str("isbn", created.ISBN).Msg("Book created")
	return created, nil
}

// UpdatePipeline: lookup -> decode -> fault hook -> normalize (2 pass) -> conflicts -> update.
// Không có bước field rules.
type UpdatePipeline struct {
	store          repository.Store
	mutator        recordMutator
	faultInjection bool
}

func NewUpdatePipeline(store repository.Store, faultInjection bool) *UpdatePipeline {
	return &UpdatePipeline{store: store, mutator: recordMutator{now: time.Now}, faultInjection: faultInjection}
}

func (p *UpdatePipeline) Run(ctx context.Context, id int64, body []byte) (*model.Book, error) {
	// STEP 1: Record phải tồn tại, bất kể body
	if _, err := p.store.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NotFound(model.MsgBookNotFound)
		}
		return nil, model.Internal(model.MsgInternal, err)
	}

	// STEP 2: Decode body
	raw, err := model.DecodeRawBook(body)
	if err != nil {
		return nil, model.Malformed(err)
	}

	// STEP 3: Test hook
	if err := simulatedFault(p.faultInjection, raw); err != nil {
		return nil, err
	}

	// STEP 4: Normalize
	fields, err := NormalizeForUpdate(raw)
	if err != nil {
		return nil, err
	}

	// STEP 5+6: Conflicts + update trong cùng transaction
	var updated *model.Book
	err = p.store.Atomically(ctx, func(tx repository.Tx) error {
		if err := resolveUpdateConflicts(ctx, tx, id, fields); err != nil {
			return err
		}
		book, err := p.mutator.update(ctx, tx, id, fields)
		if err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, persistenceFailure(err, func(cause error) *model.BookError {
			return model.Conflicts([]string{model.MsgISBNTaken}, cause)
		})
	}

	log.Info().Int64("book_id", updated.ID).Msg("Book updated")
	return updated, nil
}
