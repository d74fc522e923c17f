// Applies the SQL files under migrations/ in lexical order.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecotrace/itad-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.ConnectionString())
	if err != nil {
		fmt.Printf("connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		fmt.Printf("list migrations: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("read %s: %v\n", file, err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			fmt.Printf("apply %s: %v\n", file, err)
			os.Exit(1)
		}
		fmt.Printf("applied %s\n", file)
	}
	fmt.Println("migrations complete")
}
