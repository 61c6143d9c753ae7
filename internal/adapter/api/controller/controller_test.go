package controller_test

import (
	"bytes"
	"encoding/json"
	"math"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/controller"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/route"
	"github.com/hugohenrick/pos-inventario/internal/adapter/idempotency"
	"github.com/hugohenrick/pos-inventario/internal/adapter/repository/memory"
	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/auth"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	t      *testing.T
	router *gin.Engine
}

func newServer(t *testing.T, authRequired bool) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	log := logger.Nop()
	stock := usecase.NewStockControl(nil)
	catalog := usecase.NewCatalogService(store, stock, product.NewBarcodeGenerator(rand.New(rand.NewPCG(7, 11)), 0), log)
	sales := usecase.NewSaleService(store, stock, log, usecase.WithIdempotency(idempotency.NewMemoryStore(time.Hour)))
	users := usecase.NewUserService(store.Users(), log)
	jwtService, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	var guards []gin.HandlerFunc
	if authRequired {
		guards = append(guards, auth.JWTAuthMiddleware(jwtService))
	}

	r := gin.New()
	root := r.Group("")
	route.SetupProductRoutes(root, controller.NewProductController(catalog, log), guards...)
	route.SetupSaleRoutes(root, controller.NewSaleController(sales, log), guards...)
	route.SetupUserRoutes(root, controller.NewUserController(users, jwtService, log), guards...)
	return &server{t: t, router: r}
}

func (s *server) do(method, path string, body interface{}, headers ...string) (int, map[string]interface{}) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (s *server) addProduct(name string, qty int, price string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/product/agregar", map[string]interface{}{
		"nombreProducto": name,
		"descripcion":    name + " desc",
		"cantidad":       qty,
		"precio":         price,
	})
	require.Equal(s.t, http.StatusOK, code, body)
	return body["producto"].(map[string]interface{})["codigoBarras"].(string)
}

func cashSale(items ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"productos":     items,
		"tipoPago":      "efectivo",
		"nombreCliente": "María López",
		"cedulaCliente": "1712345678",
		"observacion":   "mostrador",
	}
}

func item(barcode string, qty int) map[string]interface{} {
	return map[string]interface{}{"codigoBarras": barcode, "cantidad": qty}
}

func TestProductLifecycle(t *testing.T) {
	s := newServer(t, false)

	code, _ := s.do(http.MethodGet, "/product/listar", nil)
	assert.Equal(t, http.StatusNotFound, code)

	barcode := s.addProduct("Galletas", 0, "1.50")
	assert.Len(t, barcode, 13)

	code, body := s.do(http.MethodGet, "/product/buscar/"+barcode, nil)
	require.Equal(t, http.StatusOK, code)
	p := body["producto"].(map[string]interface{})
	assert.Equal(t, "Agotado", p["estado"])
	assert.Equal(t, "1.50", p["precio"])

	code, body = s.do(http.MethodPost, "/product/aumentar", map[string]interface{}{"codigoBarras": barcode, "cantidad": 8})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Disponible", body["productoActualizado"].(map[string]interface{})["estado"])

	code, body = s.do(http.MethodPut, "/product/actualizar/"+barcode, map[string]interface{}{"precio": "1.75", "estado": "Agotado"})
	require.Equal(t, http.StatusOK, code)
	p = body["producto"].(map[string]interface{})
	assert.Equal(t, "1.75", p["precio"])
	assert.Equal(t, "Disponible", p["estado"])

	code, body = s.do(http.MethodGet, "/product/listar", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["productos"], 1)

	code, body = s.do(http.MethodGet, "/product/movimientos/"+barcode, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["movimientos"], 1)

	code, _ = s.do(http.MethodDelete, "/product/eliminar/"+barcode, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/product/eliminar/"+barcode, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAddProductErrors(t *testing.T) {
	s := newServer(t, false)
	s.addProduct("Café", 1, "3.00")

	code, body := s.do(http.MethodPost, "/product/agregar", map[string]interface{}{
		"nombreProducto": "CAFE", "descripcion": "x", "cantidad": 1, "precio": "1.00",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Ya existe un producto con ese nombre", body["msg"])

	code, body = s.do(http.MethodPost, "/product/agregar", map[string]interface{}{"nombreProducto": "Té"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["details"])
}

func TestRegisterSaleFlow(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Agua", 10, "3.50")
	b := s.addProduct("Pan", 2, "0.25")

	code, body := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 10), item(b, 2)))
	require.Equal(t, http.StatusCreated, code, body)
	venta := body["venta"].(map[string]interface{})
	assert.Equal(t, "35.50", venta["total"])
	assert.Nil(t, venta["numeroDocumento"])

	_, body = s.do(http.MethodGet, "/product/buscar/"+a, nil)
	assert.Equal(t, "Agotado", body["producto"].(map[string]interface{})["estado"])

	code, body = s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 1)))
	assert.Equal(t, http.StatusBadRequest, code)
	details := body["details"].(map[string]interface{})
	assert.Equal(t, []interface{}{a}, details["codigosAgotados"])

	code, body = s.do(http.MethodGet, "/vent/listarVenta", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["ventas"], 1)
}

func TestRegisterSaleValidation(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Queso", 5, "4.00")

	req := cashSale(item(a, 1))
	req["cedulaCliente"] = "12345"
	code, body := s.do(http.MethodPost, "/vent/registrarVenta", req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "cedulaCliente debe tener exactamente 10 dígitos")

	req = cashSale(item(a, 1))
	req["tipoPago"] = "transferencia"
	code, _ = s.do(http.MethodPost, "/vent/registrarVenta", req)
	assert.Equal(t, http.StatusBadRequest, code)

	req["numeroDocumento"] = "TR-1"
	req["descripcionDocumento"] = "Banco Pichincha"
	code, body = s.do(http.MethodPost, "/vent/registrarVenta", req)
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "TR-1", body["venta"].(map[string]interface{})["numeroDocumento"])
}

func TestRegisterSaleIdempotencyKey(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Huevos", 5, "0.20")

	code, first := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 2)), controller.IdempotencyHeader, "caja-1-0001")
	require.Equal(t, http.StatusCreated, code)

	code, second := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 2)), controller.IdempotencyHeader, "caja-1-0001")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, first["venta"].(map[string]interface{})["id"], second["venta"].(map[string]interface{})["id"])

	_, body := s.do(http.MethodGet, "/product/buscar/"+a, nil)
	assert.EqualValues(t, 3, body["producto"].(map[string]interface{})["cantidad"])
}

func TestSaleUpdateAndDelete(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Leche", 3, "1.00")
	_, body := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 1)))
	id := int(body["venta"].(map[string]interface{})["id"].(float64))
	path := func(prefix string) string { return prefix + "/" + jsonNumber(id) }

	code, _ := s.do(http.MethodPut, path("/vent/actualizarVenta"), map[string]interface{}{"numeroDocumento": "X"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(http.MethodPut, path("/vent/actualizarVenta"), map[string]interface{}{"observacion": "corregida"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "corregida", body["venta"].(map[string]interface{})["observacion"])

	code, _ = s.do(http.MethodGet, "/vent/listarVenta/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodDelete, path("/vent/eliminarVenta"), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, path("/vent/listarVenta"), nil)
	assert.Equal(t, http.StatusNotFound, code)

	_, body = s.do(http.MethodGet, "/product/buscar/"+a, nil)
	assert.EqualValues(t, 2, body["producto"].(map[string]interface{})["cantidad"])
}

func TestUserRegisterLoginDelete(t *testing.T) {
	s := newServer(t, true)
	reg := map[string]interface{}{
		"nombre": "Ana Torres", "cedula": "1712345678", "telefono": "0991234567",
		"email": "ana@tienda.ec", "password": "secreto123",
	}

	code, body := s.do(http.MethodPost, "/users/registro", reg)
	require.Equal(t, http.StatusOK, code, body)
	usuario := body["usuario"].(map[string]interface{})
	assert.NotContains(t, usuario, "password")

	code, _ = s.do(http.MethodPost, "/users/registro", reg)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/users/login", map[string]interface{}{"email": "otro@tienda.ec", "password": "x"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodPost, "/users/login", map[string]interface{}{"email": "ana@tienda.ec", "password": "mala"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(http.MethodPost, "/users/login", map[string]interface{}{"email": "ana@tienda.ec", "password": "secreto123"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana Torres", body["nombre"])
	assert.Equal(t, "0991234567", body["telefono"])
	assert.NotContains(t, body, "password")
	token := body["token"].(string)

	code, _ = s.do(http.MethodGet, "/product/listar", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/product/listar", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, "/users/eliminar/"+usuario["id"].(string), nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequestBindingRules(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Arroz", 5, "1.10")

	code, body := s.do(http.MethodPost, "/users/registro", map[string]interface{}{
		"nombre": "Ana", "cedula": "1712345678", "telefono": "0991234567",
		"email": "x", "password": "secreto123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "email debe ser un email válido")

	code, body = s.do(http.MethodPost, "/users/registro", map[string]interface{}{
		"nombre": "Ana", "cedula": "1712345678", "telefono": "0991234567",
		"email": "ana@tienda.ec", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = s.do(http.MethodPost, "/users/login", map[string]interface{}{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "email es obligatorio")

	code, body = s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 0)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "productos[0].cantidad es obligatorio")

	code, body = s.do(http.MethodPost, "/vent/registrarVenta", cashSale())
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "productos es obligatorio")

	empty := cashSale()
	empty["productos"] = []interface{}{}
	code, body = s.do(http.MethodPost, "/vent/registrarVenta", empty)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "productos debe incluir al menos 1 elemento(s)")

	req := cashSale(item(a, 1))
	req["tipoPago"] = "tarjeta"
	code, body = s.do(http.MethodPost, "/vent/registrarVenta", req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["details"], "tipoPago debe ser uno de: efectivo, transferencia")

	code, _ = s.do(http.MethodPost, "/product/aumentar", map[string]interface{}{"codigoBarras": a, "cantidad": -3})
	assert.Equal(t, http.StatusBadRequest, code)

	_, body = s.do(http.MethodGet, "/product/buscar/"+a, nil)
	assert.EqualValues(t, 5, body["producto"].(map[string]interface{})["cantidad"])
}

func TestOverflowingQuantitiesAreRejected(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Aceite", 5, "2.40")

	code, _ := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, math.MaxInt32), item(a, 2)))
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/product/aumentar", map[string]interface{}{"codigoBarras": a, "cantidad": math.MaxInt32})
	assert.Equal(t, http.StatusBadRequest, code)

	_, body := s.do(http.MethodGet, "/product/buscar/"+a, nil)
	assert.EqualValues(t, 5, body["producto"].(map[string]interface{})["cantidad"])
}

func TestIdempotencyKeyReusedForAnotherSale(t *testing.T) {
	s := newServer(t, false)
	a := s.addProduct("Fréjol", 5, "1.00")

	code, _ := s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 1)), controller.IdempotencyHeader, "caja-9")
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, "/vent/registrarVenta", cashSale(item(a, 2)), controller.IdempotencyHeader, "caja-9")
	assert.Equal(t, http.StatusConflict, code)
}

func jsonNumber(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
