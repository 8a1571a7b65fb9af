package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/repository/jsonfile"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func newFileWorkspaceService(t *testing.T, hub *service.PreviewHub) service.WorkspaceService {
	t.Helper()
	repo, err := jsonfile.NewWorkspaceRepo(filepath.Join(t.TempDir(), "ws.json"))
	require.NoError(t, err)
	return service.NewWorkspaceService(repo, nil, hub)
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestWorkspaceService_Get_SeedsDefaultWorkspace(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	svc := service.NewWorkspaceService(repo, nil, nil)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	repo.On("Save", mock.Anything, userID, mock.AnythingOfType("*invoice.Workspace")).Return(nil)

	view, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, invoice.TemplateStandard, view.ActiveTemplate)
	assert.Equal(t, invoice.Default(invoice.TemplateStandard), view.State)
	assert.Equal(t, invoice.TemplateStandard, view.Data.TemplateID)
	repo.AssertExpectations(t)
}

func TestWorkspaceService_Get_SeedsFromSettings(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := service.NewWorkspaceService(repo, settingsRepo, nil)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(nil, domain.ErrNotFound)
	repo.On("Save", mock.Anything, userID, mock.Anything).Return(nil)
	settingsRepo.On("Get", mock.Anything, userID).Return(&domain.UserSettings{
		UserID:          userID,
		DefaultTemplate: invoice.TemplateLegal,
		CompanyName:     "Acme Ltd",
		Currency:        "EUR",
		TaxRate:         19,
	}, nil)

	view, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, invoice.TemplateLegal, view.ActiveTemplate)
	assert.Equal(t, "Acme Ltd", view.State.CompanyName)
	assert.Equal(t, "EUR", view.State.Currency)
	assert.Equal(t, 19.0, view.State.TaxRate)
	// empty profile fields keep the template defaults
	assert.Equal(t, invoice.Default(invoice.TemplateLegal).CompanyEmail, view.State.CompanyEmail)
}

func TestWorkspaceService_Get_RepoError(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	svc := service.NewWorkspaceService(repo, nil, nil)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(nil, errors.New("disk on fire"))

	view, err := svc.Get(context.Background(), userID)

	assert.Nil(t, view)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestWorkspaceService_MutationFailureNotSaved(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	svc := service.NewWorkspaceService(repo, nil, nil)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(invoice.NewWorkspace(invoice.TemplateStandard), nil)

	_, err := svc.ToggleElement(context.Background(), userID, "confetti")

	assert.ErrorIs(t, err, invoice.ErrUnknownElement)
	repo.AssertNotCalled(t, "Save")
}

func TestWorkspaceService_SaveFailure(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	svc := service.NewWorkspaceService(repo, nil, nil)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(invoice.NewWorkspace(invoice.TemplateStandard), nil)
	repo.On("Save", mock.Anything, userID, mock.Anything).Return(errors.New("write failed"))

	view, err := svc.AddInvoiceItem(context.Background(), userID)

	assert.Nil(t, view)
	assert.Error(t, err)
}

func TestWorkspaceService_EditFlowPersists(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	items := []invoice.LineItem{{ID: 1, Description: "Design", Quantity: 1, Rate: 100, Visible: true}}
	view, err := svc.UpdateTemplateState(ctx, userID, invoice.Patch{
		Items:          &items,
		TaxRate:        f64(10),
		DiscountAmount: f64(0),
		ShippingCost:   f64(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 110.0, view.State.Total)

	view, err = svc.AddInvoiceItem(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.State.Items, 2)
	newID := view.State.Items[1].ID

	view, err = svc.UpdateInvoiceItem(ctx, userID, newID, invoice.ItemPatch{Quantity: f64(2), Rate: f64(50)})
	require.NoError(t, err)
	assert.Equal(t, 220.0, view.State.Total)
	assert.Equal(t, 220.0, view.Data.Total)

	view, err = svc.RemoveInvoiceItem(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 110.0, view.State.Total)

	got, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, view.State, got.State)
}

func TestWorkspaceService_SwitchAndReset(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.UpdateTemplateState(ctx, userID, invoice.Patch{CompanyName: str("Edited")})
	require.NoError(t, err)

	view, err := svc.SwitchTemplate(ctx, userID, invoice.TemplateLegal)
	require.NoError(t, err)
	assert.Equal(t, invoice.TemplateLegal, view.ActiveTemplate)

	view, err = svc.SwitchTemplate(ctx, userID, invoice.TemplateStandard)
	require.NoError(t, err)
	assert.Equal(t, "Edited", view.State.CompanyName)

	view, err = svc.ResetTemplate(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, invoice.Default(invoice.TemplateStandard), view.State)
}

func TestWorkspaceService_CustomFields(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	view, err := svc.AddCustomField(ctx, userID, service.AddCustomFieldInput{
		Type: invoice.FieldText, Label: "PO Number", Section: "header",
	})
	require.NoError(t, err)
	field := view.State.CustomFields[len(view.State.CustomFields)-1]
	assert.Equal(t, "PO Number", field.Label)

	view, err = svc.UpdateCustomField(ctx, userID, field.ID, invoice.CustomFieldPatch{Value: str("PO-9")})
	require.NoError(t, err)
	assert.Equal(t, "PO-9", view.State.CustomFields[len(view.State.CustomFields)-1].Value)

	_, err = svc.UpdateCustomField(ctx, userID, "missing", invoice.CustomFieldPatch{})
	assert.ErrorIs(t, err, invoice.ErrCustomFieldMissing)

	_, err = svc.AddCustomField(ctx, userID, service.AddCustomFieldInput{Type: invoice.FieldSelect, Label: "Empty"})
	assert.ErrorIs(t, err, invoice.ErrInvalidCustomField)

	view, err = svc.RemoveCustomField(ctx, userID, field.ID)
	require.NoError(t, err)
	for _, f := range view.State.CustomFields {
		assert.NotEqual(t, field.ID, f.ID)
	}
}

func TestWorkspaceService_Replace(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	state := invoice.Default(invoice.TemplateLegal)
	state.ClientName = "Restored Client"

	view, err := svc.Replace(ctx, userID, invoice.TemplateLegal, state)
	require.NoError(t, err)
	assert.Equal(t, invoice.TemplateLegal, view.ActiveTemplate)
	assert.Equal(t, "Restored Client", view.State.ClientName)

	_, err = svc.Replace(ctx, userID, invoice.TemplateLegal, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestWorkspaceService_PublishesToHub(t *testing.T) {
	hub := service.NewPreviewHub()
	svc := newFileWorkspaceService(t, hub)
	userID := uuid.New()

	updates, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	_, err := svc.UpdateTemplateState(context.Background(), userID, invoice.Patch{ClientName: str("Live Client")})
	require.NoError(t, err)

	data := <-updates
	assert.Equal(t, "Live Client", data.Client.Name)

	// reads do not publish
	_, err = svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestWorkspaceService_ConcurrentMutationsSerialized(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	empty := []invoice.LineItem{}
	_, err := svc.UpdateTemplateState(ctx, userID, invoice.Patch{Items: &empty})
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddInvoiceItem(ctx, userID)
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, view.State.Items, n)
}

func TestWorkspaceService_UpdateTemplateState_RejectsDuplicateItemIDs(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	before, err := svc.Get(ctx, userID)
	require.NoError(t, err)

	items := []invoice.LineItem{{ID: 3, Quantity: 1, Rate: 5}, {ID: 3, Quantity: 2, Rate: 5}}
	view, err := svc.UpdateTemplateState(ctx, userID, invoice.Patch{Items: &items})

	require.ErrorIs(t, err, invoice.ErrDuplicateID)
	assert.Nil(t, view)

	after, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before.State.Items, after.State.Items)
}

func TestWorkspaceService_UpdateTemplateState_RejectsMalformedCustomField(t *testing.T) {
	svc := newFileWorkspaceService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fields := []invoice.CustomField{{ID: "tier", Type: invoice.FieldSelect, Label: "Tier"}}
	_, err := svc.UpdateTemplateState(ctx, userID, invoice.Patch{CustomFields: &fields})

	require.ErrorIs(t, err, invoice.ErrInvalidCustomField)
}
