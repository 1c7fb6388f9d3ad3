package erp

import (
	"context"

	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// Cada mutación escribe primero en el backend. Si falla, la foto local no cambia y el error vuelve
// tal cual al llamador, sin reintentos.

// AddMaterial agrega la fila devuelta al final (sin reordenar) y vuelve a leer las estadísticas.
func (s *Store) AddMaterial(ctx context.Context, in entity.MaterialInput) error {
	gen := s.generation()
	m, err := s.gw.CreateMaterial(ctx, in)
	if err != nil {
		return err
	}
	s.apply(gen, func(snap *Snapshot) { snap.Materials = append(snap.Materials, *m) })
	s.refreshStats(ctx, gen)
	return nil
}

// UpdateMaterial reemplaza en su lugar la fila con el mismo id.
func (s *Store) UpdateMaterial(ctx context.Context, id string, patch entity.MaterialPatch) error {
	gen := s.generation()
	m, err := s.gw.UpdateMaterial(ctx, id, patch)
	if err != nil {
		return err
	}
	s.apply(gen, func(snap *Snapshot) {
		next := make([]entity.Material, len(snap.Materials))
		for i, cur := range snap.Materials {
			if cur.ID == id {
				next[i] = *m
				continue
			}
			next[i] = cur
		}
		snap.Materials = next
	})
	return nil
}

// DeleteMaterial quita la fila local tras el borrado remoto.
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	gen := s.generation()
	if err := s.gw.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	s.apply(gen, func(snap *Snapshot) {
		next := make([]entity.Material, 0, len(snap.Materials))
		for _, cur := range snap.Materials {
			if cur.ID != id {
				next = append(next, cur)
			}
		}
		snap.Materials = next
	})
	return nil
}

// AddProductionOrder crea la orden y recarga todo: el estado de las órdenes solo llega al
// dashboard por recarga completa.
func (s *Store) AddProductionOrder(ctx context.Context, in entity.ProductionOrderInput) error {
	if _, err := s.gw.CreateProductionOrder(ctx, in); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// UpdateProductionOrder actualiza la orden y recarga todo.
func (s *Store) UpdateProductionOrder(ctx context.Context, id string, patch entity.ProductionOrderPatch) error {
	if _, err := s.gw.UpdateProductionOrder(ctx, id, patch); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// AddQualityInspection antepone la inspección y vuelve a leer las estadísticas.
func (s *Store) AddQualityInspection(ctx context.Context, in entity.QualityInspectionInput) error {
	gen := s.generation()
	q, err := s.gw.CreateQualityInspection(ctx, in)
	if err != nil {
		return err
	}
	s.apply(gen, func(snap *Snapshot) {
		next := make([]entity.QualityInspection, 0, len(snap.QualityInspections)+1)
		next = append(next, *q)
		snap.QualityInspections = append(next, snap.QualityInspections...)
	})
	s.refreshStats(ctx, gen)
	return nil
}

// AddSupplier agrega al final. activeSuppliers queda desactualizado hasta la próxima recarga.
func (s *Store) AddSupplier(ctx context.Context, in entity.SupplierInput) error {
	gen := s.generation()
	sup, err := s.gw.CreateSupplier(ctx, in)
	if err != nil {
		return err
	}
	s.apply(gen, func(snap *Snapshot) { snap.Suppliers = append(snap.Suppliers, *sup) })
	return nil
}
