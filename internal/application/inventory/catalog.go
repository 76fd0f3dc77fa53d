package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

// References entidades del catálogo resueltas para un movimiento.
type References struct {
	Product *entity.Product
	Variant *entity.ProductVariant
	From    *entity.Location
	To      *entity.Location
	Lot     *entity.ProductLot
	Serial  *entity.ProductSerial
}

// Catalog valida que los ids referenciados existan y que variante, lote y serial
// pertenezcan al producto del movimiento. Producto y ubicaciones quedan bloqueados en
// modo compartido (no se pueden borrar mientras el movimiento esté en curso); lote y
// serial en modo exclusivo, aquí, para fijar el orden lote → serial → registros.
type Catalog struct{}

// Resolve resuelve todas las referencias del movimiento dentro de la transacción de repos.
func (Catalog) Resolve(ctx context.Context, repos Repositories, in inventory.MovementIntent) (*References, error) {
	refs := &References{}

	product, err := repos.Products.GetForShare(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Kind: "product", ID: in.ProductID}
	}
	refs.Product = product

	if in.VariantID != "" {
		v, err := repos.Products.GetVariant(ctx, in.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, &domain.NotFoundError{Kind: "variant", ID: in.VariantID}
		}
		if v.ProductID != product.ID {
			return nil, &domain.MismatchedOwnershipError{Kind: "variant", ID: v.ID, OwnerProductID: v.ProductID, ExpectedProduct: product.ID}
		}
		refs.Variant = v
	}

	if refs.From, err = resolveLocation(ctx, repos, in.FromLocationID); err != nil {
		return nil, err
	}
	if refs.To, err = resolveLocation(ctx, repos, in.ToLocationID); err != nil {
		return nil, err
	}

	if in.LotID != "" {
		lot, err := repos.Lots.GetForUpdate(ctx, in.LotID)
		if err != nil {
			return nil, err
		}
		if lot == nil {
			return nil, &domain.NotFoundError{Kind: "lot", ID: in.LotID}
		}
		if lot.ProductID != product.ID {
			return nil, &domain.MismatchedOwnershipError{Kind: "lot", ID: lot.ID, OwnerProductID: lot.ProductID, ExpectedProduct: product.ID}
		}
		refs.Lot = lot
	}

	if in.SerialID != "" {
		serial, err := repos.Serials.GetForUpdate(ctx, in.SerialID)
		if err != nil {
			return nil, err
		}
		if serial == nil {
			return nil, &domain.NotFoundError{Kind: "serial", ID: in.SerialID}
		}
		if serial.ProductID != product.ID {
			return nil, &domain.MismatchedOwnershipError{Kind: "serial", ID: serial.ID, OwnerProductID: serial.ProductID, ExpectedProduct: product.ID}
		}
		refs.Serial = serial
	}
	return refs, nil
}

func resolveLocation(ctx context.Context, repos Repositories, id string) (*entity.Location, error) {
	if id == "" {
		return nil, nil
	}
	loc, err := repos.Locations.GetForShare(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, &domain.NotFoundError{Kind: "location", ID: id}
	}
	return loc, nil
}
