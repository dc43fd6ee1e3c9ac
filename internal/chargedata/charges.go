package chargedata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gyeh/chargecompare/internal/catalog"
	"github.com/gyeh/chargecompare/internal/db"
	"github.com/gyeh/chargecompare/internal/model"
)

// chargeStage is the position of the charge-detail reader in the procedure's
// four result sets.
type chargeStage int

const (
	awaitingCharges chargeStage = iota
	awaitingChargesPct
	awaitingPaymentsPct
	awaitingMedicarePct
	chargesDone
)

const chargeResultSets = int(chargesDone)

func (st chargeStage) String() string {
	switch st {
	case awaitingCharges:
		return "charges"
	case awaitingChargesPct:
		return "avg charges percentile"
	case awaitingPaymentsPct:
		return "avg payments percentile"
	case awaitingMedicarePct:
		return "avg medicare payments percentile"
	case chargesDone:
		return "done"
	}
	return fmt.Sprintf("chargeStage(%d)", int(st))
}

// chargeAssembler fills one ChargeClassification from the result sets in
// order. Any failed advance leaves it unfinished and the caller drops it.
type chargeAssembler struct {
	stage chargeStage
	c     model.ChargeClassification
}

func (a *chargeAssembler) step(ctx context.Context, rs *db.ResultSets) error {
	if a.stage == awaitingCharges && !rs.HasResultSet() {
		return fmt.Errorf("%s: %w", a.stage, db.ErrNoResultSet)
	}

	var err error
	switch a.stage {
	case awaitingCharges:
		err = a.readAmounts(ctx, rs)
	case awaitingChargesPct:
		a.c.AvgChargesPercentile, err = lastPercentile(ctx, rs, catalog.ColAvgChargesPercentile)
	case awaitingPaymentsPct:
		a.c.AvgPaymentsPercentile, err = lastPercentile(ctx, rs, catalog.ColAvgPaymentsPercentile)
	case awaitingMedicarePct:
		a.c.AvgMedicarePaymentsPercentile, err = lastPercentile(ctx, rs, catalog.ColAvgMedicarePaymentsPercentile)
	default:
		return fmt.Errorf("charge detail already complete")
	}
	if err != nil {
		return fmt.Errorf("%s: %w", a.stage, err)
	}
	a.stage++
	return nil
}

func (a *chargeAssembler) readAmounts(ctx context.Context, rs *db.ResultSets) error {
	rows, err := collect(ctx, rs, pgx.RowToFunc[amountCols](amounts))
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		rows[len(rows)-1].apply(&a.c)
	}
	return nil
}

// lastPercentile reads one percentile result set. If it holds several rows
// the last wins; if it holds none the rank stays nil.
func lastPercentile(ctx context.Context, rs *db.ResultSets, column string) (*model.Percentile, error) {
	ranks, err := collect(ctx, rs, percentile(column))
	if err != nil {
		return nil, err
	}
	if len(ranks) == 0 {
		return nil, nil
	}
	p := ranks[len(ranks)-1]
	return &p, nil
}

// assembleCharges drives the assembler through every stage.
func assembleCharges(ctx context.Context, rs *db.ResultSets, classificationID int) (model.ChargeClassification, error) {
	a := chargeAssembler{c: model.ChargeClassification{ID: classificationID}}
	for a.stage != chargesDone {
		if err := a.step(ctx, rs); err != nil {
			return model.ChargeClassification{}, err
		}
	}
	return a.c, nil
}
