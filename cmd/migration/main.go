package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/pos-inventario/internal/config"
	"github.com/hugohenrick/pos-inventario/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}
	cfg := config.Load()

	direction := flag.String("direction", "up", "up ou down")
	steps := flag.Int("steps", 0, "quantidade de migrações a reverter (down); 0 reverte todas")
	path := flag.String("path", cfg.MigrationsPath, "diretório com os arquivos .sql")
	flag.Parse()

	mg, err := database.NewMigrator(cfg.Database.ConnectionString(), *path)
	if err != nil {
		log.Fatalf("Erro ao preparar migrações: %v", err)
	}
	defer mg.Close()

	switch *direction {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down(*steps)
	default:
		log.Fatalf("Direção inválida: %q", *direction)
	}
	if err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatalf("Erro ao consultar versão: %v", err)
	}
	log.Printf("Migrações executadas com sucesso! versão=%d suja=%t", version, dirty)
}
