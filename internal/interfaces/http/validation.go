package http

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal como número para gte/gt.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// parseBody decodifica el JSON y ejecuta las etiquetas validate.
// Los errores los traduce respondError (400 VALIDATION).
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Invalid("body", "cuerpo JSON inválido")
	}
	return validate.Struct(dst)
}

// pathID lee un parámetro entero positivo de la ruta.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "debe ser un entero positivo")
	}
	return id, nil
}

// queryID lee un filtro entero opcional; vacío = nil.
func queryID(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.Invalid(name, "debe ser un entero positivo")
	}
	return &id, nil
}
