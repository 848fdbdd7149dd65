// seed_employees genera empleados de prueba con datos aleatorios y los registra en la API
// (POST /employee) o los escribe como fixture JSON.
//
// Uso: go run ./cmd/seed_employees -n 50 -api http://localhost:8080
//
//	go run ./cmd/seed_employees -n 50 -out employees.json
//
// Si JWT_SECRET está definido firma un token con alcance records:write.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/pkg/config"
	"github.com/jhoicas/talento-api/pkg/jwt"
)

const (
	minIdentification = 1000000000
	maxIdentification = 1130000000
	dateLayout        = "2006/01/02"
)

type employeeSeed struct {
	Identification int64  `json:"identification"`
	Name           string `json:"name"`
	HiringDate     string `json:"hiring_date"`
	BirthDate      string `json:"birthdate"`
	Company        string `json:"company,omitempty"`
}

func main() {
	n := flag.Int("n", 20, "cantidad de empleados")
	api := flag.String("api", "", "URL base de la API (ej. http://localhost:8080)")
	out := flag.String("out", "", "archivo JSON de salida")
	company := flag.String("company", "", "NIT de la empresa a asociar (opcional)")
	seed := flag.Uint64("seed", 0, "semilla; 0 usa una aleatoria")
	flag.Parse()

	if *api == "" && *out == "" {
		fmt.Fprintln(os.Stderr, "Indique -api o -out")
		os.Exit(2)
	}

	employees := generate(gofakeit.New(*seed), *n, *company)

	if *out != "" {
		data, err := json.MarshalIndent(employees, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Serializar: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("Escrito %s (%d empleados)\n", *out, len(employees))
	}

	if *api != "" {
		token, err := bearerToken()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Token: %v\n", err)
			os.Exit(1)
		}
		created := 0
		for _, e := range employees {
			if err := post(strings.TrimRight(*api, "/")+"/employee", token, e); err != nil {
				fmt.Fprintf(os.Stderr, "Empleado %d: %v\n", e.Identification, err)
				continue
			}
			created++
		}
		fmt.Printf("Registrados %d/%d empleados\n", created, len(employees))
	}
}

// generate produce n empleados con identificación única, nacimiento entre 1980 y 1995
// y contratación entre 2005 y 2022.
func generate(f *gofakeit.Faker, n int, company string) []employeeSeed {
	birthFrom := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	birthTo := time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC)
	hireFrom := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	hireTo := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)

	seen := make(map[int64]bool, n)
	out := make([]employeeSeed, 0, n)
	for len(out) < n {
		id := int64(f.IntRange(minIdentification, maxIdentification))
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, employeeSeed{
			Identification: id,
			Name:           f.FirstName() + " " + f.LastName(),
			HiringDate:     f.DateRange(hireFrom, hireTo).Format(dateLayout),
			BirthDate:      f.DateRange(birthFrom, birthTo).Format(dateLayout),
			Company:        company,
		})
	}
	return out
}

func bearerToken() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.JWT.Secret == "" {
		return "", nil
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, "seed-employees", jwt.ScopeWrite, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return "", err
	}
	return "Bearer " + tok, nil
}

func post(url, token string, e employeeSeed) error {
	agent := fiber.Post(url)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, token)
	}
	agent.JSON(fiber.Map{"data": e})

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if status != fiber.StatusCreated {
		return fmt.Errorf("status %d: %s", status, body)
	}
	return nil
}
