package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"nemt-rides/internal/shared/models"
)

// LoadConfig reads a YAML-subset config file (two levels: section, key)
// and expands ${ENV_VAR:-default} references against the environment.
func LoadConfig(filename string) (*models.Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &models.Config{}
	cfg.Pagination.DefaultPageSize = 20
	cfg.Pagination.MaxPageSize = 100

	var section string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.Contains(line, ":") {
			continue
		}

		if strings.HasSuffix(line, ":") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if strings.HasPrefix(val, "${") {
			inside := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			parts := strings.SplitN(inside, ":-", 2)

			envVar := parts[0]
			defVal := ""
			if len(parts) == 2 {
				defVal = parts[1]
			}

			if v, ok := os.LookupEnv(envVar); ok {
				val = v
			} else {
				val = defVal
			}
		}

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = val
			case "port":
				cfg.Database.Port = val
			case "user":
				cfg.Database.User = val
			case "password":
				cfg.Database.Password = val
			case "database":
				cfg.Database.Database = val
			}
		case "http":
			if key == "port" {
				cfg.HTTP.Port = val
			}
		case "auth":
			if key == "jwt_secret" {
				cfg.Auth.JWTSecret = val
			}
		case "pagination":
			switch key {
			case "default_page_size":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					cfg.Pagination.DefaultPageSize = n
				}
			case "max_page_size":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					cfg.Pagination.MaxPageSize = n
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}
