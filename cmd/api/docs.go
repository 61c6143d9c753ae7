package main

// @title           POS Inventario API
// @version         1.0
// @description     API de inventario y punto de venta: catálogo, ventas y usuarios

// @contact.name   API Support
// @contact.email  soporte@pos-inventario.local

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
