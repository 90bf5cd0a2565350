package recuento

import (
	"context"
	"fmt"

	"github.com/nixnvs/blossomstock-web/internal/application/dto"
	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// LifecycleUseCase gobierna la máquina de estados Borrador → Cerrado y las
// ediciones de líneas, permitidas solo en Borrador.
type LifecycleUseCase struct {
	repo repository.RecuentoRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(repo repository.RecuentoRepository) *LifecycleUseCase {
	return &LifecycleUseCase{repo: repo}
}

// List devuelve todos los recuentos, mes más reciente primero.
func (uc *LifecycleUseCase) List(ctx context.Context) ([]dto.RecuentoResponse, error) {
	recs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRecuentoResponses(recs), nil
}

// ListCerrados devuelve los recuentos cerrados, cierre más reciente primero.
func (uc *LifecycleUseCase) ListCerrados(ctx context.Context) ([]dto.RecuentoResponse, error) {
	recs, err := uc.repo.ListCerrados(ctx)
	if err != nil {
		return nil, err
	}
	return toRecuentoResponses(recs), nil
}

// UpdateEstado aplica un cambio de estado pedido por el cliente. El único
// tránsito legal es Borrador → Cerrado; reabrir un recuento cerrado falla con
// ErrInvalidTransition, y cerrarlo dos veces también (rechazo explícito, no
// éxito silencioso).
func (uc *LifecycleUseCase) UpdateEstado(ctx context.Context, id int64, estado string) (*dto.RecuentoResponse, error) {
	if estado != entity.EstadoBorrador && estado != entity.EstadoCerrado {
		return nil, fmt.Errorf("%w: estado debe ser 'Borrador' o 'Cerrado'", domain.ErrInvalidInput)
	}

	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
	}

	if estado == entity.EstadoBorrador {
		if rec.Cerrado() {
			return nil, fmt.Errorf("%w: no se puede reabrir un recuento cerrado", domain.ErrInvalidTransition)
		}
		// Borrador → Borrador: nada que hacer.
		out := ToRecuentoResponse(rec)
		return &out, nil
	}

	return uc.close(ctx, id)
}

// close cierra vía compare-and-set sobre el estado; si el CAS no aplica es que
// otro cierre ganó la carrera (o el recuento desapareció).
func (uc *LifecycleUseCase) close(ctx context.Context, id int64) (*dto.RecuentoResponse, error) {
	rec, ok, err := uc.repo.Cerrar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		actual, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if actual == nil {
			return nil, fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: el recuento ya está cerrado", domain.ErrInvalidTransition)
	}
	out := ToRecuentoResponse(rec)
	return &out, nil
}

// Lines devuelve el recuento y sus líneas en el orden canónico del catálogo.
func (uc *LifecycleUseCase) Lines(ctx context.Context, id int64) (*dto.RecuentoLineasResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
	}
	lineas, err := uc.repo.Lineas(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.RecuentoLineasResponse{
		Recuento: ToRecuentoResponse(rec),
		Lineas:   make([]dto.LineaResponse, 0, len(lineas)),
	}
	for _, l := range lineas {
		lr := toLineaResponse(&l.RecuentoLinea)
		lr.Foto = l.Foto
		out.Lineas = append(out.Lineas, lr)
	}
	return out, nil
}

// EditLine edita cantidad y/o nota de una línea mientras el recuento siga en
// Borrador. La cantidad manual no se recorta al objetivo: solo la carga inicial
// de la apertura aplica ese tope.
func (uc *LifecycleUseCase) EditLine(ctx context.Context, recuentoID, lineaID int64, in dto.EditLineaRequest) (*dto.LineaResponse, error) {
	if in.CantidadActual == nil && in.NotaLinea == nil {
		return nil, fmt.Errorf("%w: no hay campos para actualizar", domain.ErrInvalidInput)
	}
	if in.CantidadActual != nil && *in.CantidadActual < 0 {
		return nil, fmt.Errorf("%w: la cantidad actual debe ser un número mayor o igual a 0", domain.ErrInvalidInput)
	}

	rec, err := uc.repo.GetByID(ctx, recuentoID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
	}
	if rec.Cerrado() {
		return nil, fmt.Errorf("%w: no se puede editar un recuento cerrado", domain.ErrForbidden)
	}

	// La línea debe existir y pertenecer a este recuento, no a otro.
	existente, err := uc.repo.GetLinea(ctx, recuentoID, lineaID)
	if err != nil {
		return nil, err
	}
	if existente == nil {
		return nil, fmt.Errorf("%w: línea de recuento no encontrada", domain.ErrNotFound)
	}

	linea, err := uc.repo.UpdateLinea(ctx, recuentoID, lineaID, repository.LineaPatch{
		CantidadActual: in.CantidadActual,
		NotaLinea:      in.NotaLinea,
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, fmt.Errorf("%w: línea de recuento no encontrada", domain.ErrNotFound)
		}
		return nil, err
	}
	out := toLineaResponse(linea)
	return &out, nil
}

// Delete elimina el recuento y, con él, todas sus líneas (cascada del FK).
func (uc *LifecycleUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return fmt.Errorf("%w: recuento no encontrado", domain.ErrNotFound)
	}
	return err
}

func toRecuentoResponses(recs []*entity.Recuento) []dto.RecuentoResponse {
	out := make([]dto.RecuentoResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, ToRecuentoResponse(r))
	}
	return out
}

func toLineaResponse(l *entity.RecuentoLinea) dto.LineaResponse {
	return dto.LineaResponse{
		ID:               l.ID,
		RecuentoID:       l.RecuentoID,
		ItemID:           l.ItemID,
		ArticuloNombre:   l.ArticuloNombre,
		Categoria:        l.Categoria,
		PrecioUnidad:     l.PrecioUnidad,
		CantidadObjetivo: l.CantidadObjetivo,
		CantidadActual:   l.CantidadActual,
		NotaLinea:        l.NotaLinea,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
