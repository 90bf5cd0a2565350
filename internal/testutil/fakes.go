// Package testutil provee repositorios en memoria para los tests de los casos
// de uso. Replican el contrato de los adaptadores de PostgreSQL: mismos
// órdenes de listado, misma semántica de nil/errores.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/nixnvs/blossomstock-web/internal/domain"
	"github.com/nixnvs/blossomstock-web/internal/domain/entity"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// ── Items ─────────────────────────────────────────────────────────────────────

// FakeItemRepo implementación en memoria de repository.ItemRepository.
type FakeItemRepo struct {
	seq   int64
	Items map[int64]*entity.Item
}

// NewFakeItemRepo crea el repo vacío.
func NewFakeItemRepo() *FakeItemRepo {
	return &FakeItemRepo{Items: make(map[int64]*entity.Item)}
}

func (r *FakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.seq++
	item.ID = r.seq
	item.CreatedAt = time.Now()
	r.Items[item.ID] = item
	return nil
}

func (r *FakeItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	it, ok := r.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *FakeItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.Items {
		if f.ID != nil && it.ID != *f.ID {
			continue
		}
		if f.Categoria != nil && it.Categoria != *f.Categoria {
			continue
		}
		if f.Activo != nil && it.Activo != *f.Activo {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Categoria != out[j].Categoria {
			return out[i].Categoria < out[j].Categoria
		}
		return out[i].Articulo < out[j].Articulo
	})
	return out, nil
}

func (r *FakeItemRepo) ListActivos(ctx context.Context) ([]*entity.Item, error) {
	activo := true
	return r.List(ctx, repository.ItemFilter{Activo: &activo})
}

func (r *FakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	if _, ok := r.Items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.Items[item.ID] = &cp
	return nil
}

func (r *FakeItemRepo) Delete(_ context.Context, id int64) error {
	delete(r.Items, id)
	return nil
}

func (r *FakeItemRepo) DeleteAll(_ context.Context) error {
	r.Items = make(map[int64]*entity.Item)
	return nil
}

// ── Reports ───────────────────────────────────────────────────────────────────

// FakeReportRepo implementación en memoria de repository.ReportRepository.
type FakeReportRepo struct {
	seq     int64
	Reports []*entity.Report
}

// NewFakeReportRepo crea el repo vacío.
func NewFakeReportRepo() *FakeReportRepo {
	return &FakeReportRepo{}
}

func (r *FakeReportRepo) Create(_ context.Context, rep *entity.Report) error {
	r.seq++
	rep.ID = r.seq
	rep.CreatedAt = time.Now()
	cp := *rep
	r.Reports = append(r.Reports, &cp)
	return nil
}

func (r *FakeReportRepo) GetByID(_ context.Context, id int64) (*entity.Report, error) {
	for _, rep := range r.Reports {
		if rep.ID == id {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeReportRepo) List(_ context.Context, f repository.ReportFilter) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, rep := range r.Reports {
		if f.Mes != "" && rep.Mes != f.Mes {
			continue
		}
		if f.Categoria != "" && f.Categoria != "Todas" && rep.Categoria != f.Categoria {
			continue
		}
		cp := *rep
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FechaReporte.After(out[j].FechaReporte)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *FakeReportRepo) UltimosPorArticulo(_ context.Context, mes string) ([]repository.UltimoReporte, error) {
	mejor := make(map[int64]*entity.Report)
	for _, rep := range r.Reports {
		if rep.Mes != mes {
			continue
		}
		prev, ok := mejor[rep.ArticuloID]
		if !ok ||
			rep.FechaReporte.After(prev.FechaReporte) ||
			(rep.FechaReporte.Equal(prev.FechaReporte) && rep.ID > prev.ID) {
			mejor[rep.ArticuloID] = rep
		}
	}
	out := make([]repository.UltimoReporte, 0, len(mejor))
	for _, rep := range mejor {
		out = append(out, repository.UltimoReporte{
			ArticuloID: rep.ArticuloID,
			Cantidad:   rep.Cantidad,
			Notas:      rep.Notas,
		})
	}
	return out, nil
}

func (r *FakeReportRepo) MonthlyStats(ctx context.Context, mes, categoria string) (*repository.ReportStats, error) {
	reps, err := r.List(ctx, repository.ReportFilter{Mes: mes, Categoria: categoria})
	if err != nil {
		return nil, err
	}
	var s repository.ReportStats
	for _, rep := range reps {
		s.TotalCosto = s.TotalCosto.Add(rep.Costo)
		s.TotalReportes++
	}
	return &s, nil
}

func (r *FakeReportRepo) CategoryStats(ctx context.Context, f repository.ReportFilter) ([]repository.ReportStats, error) {
	f.Limit = 0
	reps, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	porCategoria := make(map[string]*repository.ReportStats)
	for _, rep := range reps {
		s, ok := porCategoria[rep.Categoria]
		if !ok {
			s = &repository.ReportStats{Categoria: rep.Categoria}
			porCategoria[rep.Categoria] = s
		}
		s.TotalCosto = s.TotalCosto.Add(rep.Costo)
		s.TotalReportes++
	}
	out := make([]repository.ReportStats, 0, len(porCategoria))
	for _, s := range porCategoria {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalCosto.GreaterThan(out[j].TotalCosto)
	})
	return out, nil
}

func (r *FakeReportRepo) Delete(_ context.Context, id int64) (*entity.Report, error) {
	for i, rep := range r.Reports {
		if rep.ID == id {
			r.Reports = append(r.Reports[:i], r.Reports[i+1:]...)
			return rep, nil
		}
	}
	return nil, nil
}

func (r *FakeReportRepo) DeleteAll(_ context.Context) error {
	r.Reports = nil
	return nil
}

// ── Recuentos ─────────────────────────────────────────────────────────────────

// FakeRecuentoRepo implementación en memoria de repository.RecuentoRepository.
// ItemRepo alimenta los joins (foto, proveedor); puede ser nil.
type FakeRecuentoRepo struct {
	seq      int64
	lineaSeq int64

	Recuentos map[int64]*entity.Recuento
	ItemRepo  *FakeItemRepo

	// lineas no se exporta: el nombre exportado chocaría con el método Lineas
	// del puerto. Los tests las consultan por la API del repo.
	lineas map[int64]*entity.RecuentoLinea
}

// NewFakeRecuentoRepo crea el repo vacío.
func NewFakeRecuentoRepo(itemRepo *FakeItemRepo) *FakeRecuentoRepo {
	return &FakeRecuentoRepo{
		Recuentos: make(map[int64]*entity.Recuento),
		lineas:    make(map[int64]*entity.RecuentoLinea),
		ItemRepo:  itemRepo,
	}
}

func (r *FakeRecuentoRepo) Create(_ context.Context, mes string) (*entity.Recuento, error) {
	for _, rec := range r.Recuentos {
		if rec.Mes == mes {
			return nil, domain.ErrDuplicate
		}
	}
	r.seq++
	rec := &entity.Recuento{
		ID:            r.seq,
		Mes:           mes,
		Estado:        entity.EstadoBorrador,
		FechaCreacion: time.Now(),
	}
	r.Recuentos[rec.ID] = rec
	cp := *rec
	return &cp, nil
}

func (r *FakeRecuentoRepo) GetByID(_ context.Context, id int64) (*entity.Recuento, error) {
	rec, ok := r.Recuentos[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *FakeRecuentoRepo) List(_ context.Context) ([]*entity.Recuento, error) {
	out := r.all()
	sort.Slice(out, func(i, j int) bool { return out[i].Mes > out[j].Mes })
	return out, nil
}

func (r *FakeRecuentoRepo) ListCerrados(_ context.Context) ([]*entity.Recuento, error) {
	var out []*entity.Recuento
	for _, rec := range r.all() {
		if rec.Cerrado() {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FechaCierre.After(*out[j].FechaCierre)
	})
	return out, nil
}

func (r *FakeRecuentoRepo) GetByMes(_ context.Context, mes string) (*entity.Recuento, error) {
	var mejor *entity.Recuento
	for _, rec := range r.Recuentos {
		if rec.Mes != mes {
			continue
		}
		if mejor == nil ||
			(rec.Cerrado() && !mejor.Cerrado()) ||
			(rec.Cerrado() == mejor.Cerrado() && rec.FechaCreacion.After(mejor.FechaCreacion)) {
			mejor = rec
		}
	}
	if mejor == nil {
		return nil, nil
	}
	cp := *mejor
	return &cp, nil
}

func (r *FakeRecuentoRepo) Cerrar(_ context.Context, id int64) (*entity.Recuento, bool, error) {
	rec, ok := r.Recuentos[id]
	if !ok || rec.Estado != entity.EstadoBorrador {
		return nil, false, nil
	}
	now := time.Now()
	rec.Estado = entity.EstadoCerrado
	rec.FechaCierre = &now
	cp := *rec
	return &cp, true, nil
}

func (r *FakeRecuentoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.Recuentos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.Recuentos, id)
	for lid, l := range r.lineas {
		if l.RecuentoID == id {
			delete(r.lineas, lid)
		}
	}
	return nil
}

func (r *FakeRecuentoRepo) BulkInsertLineas(_ context.Context, lineas []*entity.RecuentoLinea) error {
	for _, l := range lineas {
		r.lineaSeq++
		l.ID = r.lineaSeq
		l.CreatedAt = time.Now()
		l.UpdatedAt = l.CreatedAt
		cp := *l
		r.lineas[l.ID] = &cp
	}
	return nil
}

func (r *FakeRecuentoRepo) GetLinea(_ context.Context, recuentoID, lineaID int64) (*entity.RecuentoLinea, error) {
	l, ok := r.lineas[lineaID]
	if !ok || l.RecuentoID != recuentoID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *FakeRecuentoRepo) Lineas(_ context.Context, recuentoID int64) ([]repository.LineaConFoto, error) {
	var out []repository.LineaConFoto
	for _, l := range r.lineasDe(recuentoID) {
		lf := repository.LineaConFoto{RecuentoLinea: *l}
		if r.ItemRepo != nil {
			if it, ok := r.ItemRepo.Items[l.ItemID]; ok {
				lf.Foto = it.Foto
			}
		}
		out = append(out, lf)
	}
	return out, nil
}

func (r *FakeRecuentoRepo) UpdateLinea(_ context.Context, recuentoID, lineaID int64, patch repository.LineaPatch) (*entity.RecuentoLinea, error) {
	if patch.CantidadActual == nil && patch.NotaLinea == nil {
		return nil, domain.ErrInvalidInput
	}
	l, ok := r.lineas[lineaID]
	if !ok || l.RecuentoID != recuentoID {
		return nil, domain.ErrNotFound
	}
	if patch.CantidadActual != nil {
		l.CantidadActual = *patch.CantidadActual
	}
	if patch.NotaLinea != nil {
		l.NotaLinea = *patch.NotaLinea
	}
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

func (r *FakeRecuentoRepo) LineasCompra(_ context.Context, recuentoID int64) ([]repository.LineaCompra, error) {
	var out []repository.LineaCompra
	for _, l := range r.lineasDe(recuentoID) {
		if l.Faltante() == 0 {
			continue
		}
		lc := repository.LineaCompra{RecuentoLinea: *l}
		if r.ItemRepo != nil {
			if it, ok := r.ItemRepo.Items[l.ItemID]; ok {
				lc.Proveedor = it.Proveedor
				lc.ProveedorURL = it.ProveedorURL
			}
		}
		out = append(out, lc)
	}
	return out, nil
}

func (r *FakeRecuentoRepo) DeleteLineasByItem(_ context.Context, itemID int64) error {
	for lid, l := range r.lineas {
		if l.ItemID == itemID {
			delete(r.lineas, lid)
		}
	}
	return nil
}

func (r *FakeRecuentoRepo) DeleteAll(_ context.Context) error {
	r.Recuentos = make(map[int64]*entity.Recuento)
	r.lineas = make(map[int64]*entity.RecuentoLinea)
	return nil
}

func (r *FakeRecuentoRepo) all() []*entity.Recuento {
	out := make([]*entity.Recuento, 0, len(r.Recuentos))
	for _, rec := range r.Recuentos {
		cp := *rec
		out = append(out, &cp)
	}
	return out
}

// lineasDe devuelve las líneas del recuento en el orden canónico
// (categoria ASC, articulo ASC).
func (r *FakeRecuentoRepo) lineasDe(recuentoID int64) []*entity.RecuentoLinea {
	var out []*entity.RecuentoLinea
	for _, l := range r.lineas {
		if l.RecuentoID == recuentoID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Categoria != out[j].Categoria {
			return out[i].Categoria < out[j].Categoria
		}
		return out[i].ArticuloNombre < out[j].ArticuloNombre
	})
	return out
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// FakeTxRunner pasa los repos en memoria directamente, sin transacción real.
type FakeTxRunner struct {
	RecuentoRepo *FakeRecuentoRepo
	ItemRepo     *FakeItemRepo
	ReportRepo   *FakeReportRepo
}

// NewFakeTxRunner construye un runner con los tres repos enlazados entre sí.
func NewFakeTxRunner() *FakeTxRunner {
	itemRepo := NewFakeItemRepo()
	return &FakeTxRunner{
		RecuentoRepo: NewFakeRecuentoRepo(itemRepo),
		ItemRepo:     itemRepo,
		ReportRepo:   NewFakeReportRepo(),
	}
}

// Run ejecuta fn con los repos en memoria.
func (t *FakeTxRunner) Run(ctx context.Context, fn func(
	recuentoRepo repository.RecuentoRepository,
	itemRepo repository.ItemRepository,
	reportRepo repository.ReportRepository,
) error) error {
	return fn(t.RecuentoRepo, t.ItemRepo, t.ReportRepo)
}
