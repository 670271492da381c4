package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wso2/consent-policy-validator/internal/database"
	"github.com/wso2/consent-policy-validator/internal/models"
)

// ValidationAuditDAO handles database operations for validation audits
type ValidationAuditDAO struct {
	db *database.DB
}

// NewValidationAuditDAO creates a new ValidationAuditDAO instance
func NewValidationAuditDAO(db *database.DB) *ValidationAuditDAO {
	return &ValidationAuditDAO{db: db}
}

const insertValidationAuditQuery = `
		INSERT INTO SCHEMA_VALIDATION_AUDIT (
			VALIDATION_ID, ORG_ID, DOCUMENT_KIND, SCHEMA_VERSION,
			IS_VALID, ERRORS, CORRELATION_ID, VALIDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

// Create inserts a new validation audit record
func (dao *ValidationAuditDAO) Create(ctx context.Context, audit *models.ValidationAudit) error {
	_, err := dao.db.ExecContext(
		ctx,
		insertValidationAuditQuery,
		audit.ValidationID,
		audit.OrgID,
		audit.DocumentKind,
		audit.SchemaVersion,
		audit.IsValid,
		audit.Errors,
		audit.CorrelationID,
		audit.ValidatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create validation audit: %w", err)
	}

	return nil
}

// CreateWithTx inserts a new validation audit record using a transaction
func (dao *ValidationAuditDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.ValidationAudit) error {
	_, err := tx.ExecContext(
		ctx,
		insertValidationAuditQuery,
		audit.ValidationID,
		audit.OrgID,
		audit.DocumentKind,
		audit.SchemaVersion,
		audit.IsValid,
		audit.Errors,
		audit.CorrelationID,
		audit.ValidatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create validation audit with transaction: %w", err)
	}

	return nil
}

// CreateBatch inserts several audit records atomically
func (dao *ValidationAuditDAO) CreateBatch(ctx context.Context, audits []*models.ValidationAudit) error {
	if len(audits) == 0 {
		return nil
	}

	return dao.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		for _, audit := range audits {
			if err := dao.CreateWithTx(ctx, tx, audit); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a validation audit record by ID
func (dao *ValidationAuditDAO) GetByID(ctx context.Context, validationID, orgID string) (*models.ValidationAudit, error) {
	query := `
		SELECT VALIDATION_ID, ORG_ID, DOCUMENT_KIND, SCHEMA_VERSION,
			IS_VALID, ERRORS, CORRELATION_ID, VALIDATED_TIME
		FROM SCHEMA_VALIDATION_AUDIT
		WHERE VALIDATION_ID = ? AND ORG_ID = ?
	`

	var audit models.ValidationAudit
	err := dao.db.GetContext(ctx, &audit, query, validationID, orgID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get validation audit: %w", err)
	}

	return &audit, nil
}

// List retrieves validation audits for an organization, newest first,
// together with the total number of records
func (dao *ValidationAuditDAO) List(ctx context.Context, orgID string, limit, offset int) ([]models.ValidationAudit, int, error) {
	countQuery := `SELECT COUNT(*) FROM SCHEMA_VALIDATION_AUDIT WHERE ORG_ID = ?`

	var total int
	if err := dao.db.GetContext(ctx, &total, countQuery, orgID); err != nil {
		return nil, 0, fmt.Errorf("failed to count validation audits: %w", err)
	}

	query := `
		SELECT VALIDATION_ID, ORG_ID, DOCUMENT_KIND, SCHEMA_VERSION,
			IS_VALID, ERRORS, CORRELATION_ID, VALIDATED_TIME
		FROM SCHEMA_VALIDATION_AUDIT
		WHERE ORG_ID = ?
		ORDER BY VALIDATED_TIME DESC
		LIMIT ? OFFSET ?
	`

	audits := []models.ValidationAudit{}
	if err := dao.db.SelectContext(ctx, &audits, query, orgID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list validation audits: %w", err)
	}

	return audits, total, nil
}
