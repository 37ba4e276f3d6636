// check-routes visits every route produced by the converter on a running Astro
// site and reports the ones that don't answer 200.
//
// Usage: go run scripts/check-routes.go <base-url> <content-dir> [redirects.json]
package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gocolly/colly/v2"
)

type BadRoute struct {
	URL    string
	Status int
	Err    error
	Origin string
}

// printError emits a readable, top-down report for a bad route
func printError(b BadRoute) {
	fmt.Println("----- BAD ROUTE FOUND -----")
	fmt.Printf("URL:         %s\n", b.URL)
	if b.Status != 0 {
		fmt.Printf("Status:      %d\n", b.Status)
	}
	if b.Err != nil {
		fmt.Printf("Error:       %s\n", b.Err)
	}
	fmt.Printf("Origin:      %s\n", b.Origin)
	fmt.Println("---------------------------")
}

// contentRoutes lists "/<collection>/<route>/" for every .md file under dir,
// where the collection is the directory's own name.
func contentRoutes(dir string) (map[string]string, error) {
	collection := filepath.Base(filepath.Clean(dir))
	routes := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".md" {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		route := strings.TrimSuffix(filepath.ToSlash(rel), ".md")
		if route == "index" {
			route = ""
		}
		routes["/"+strings.Trim(collection+"/"+route, "/")+"/"] = path
		return nil
	})
	return routes, err
}

// redirectRoutes lists the legacy URLs of a redirects file.
func redirectRoutes(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var redirects map[string]string
	if err := json.Unmarshal(b, &redirects); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	routes := make(map[string]string, len(redirects))
	for from, to := range redirects {
		routes[from] = "redirect to " + to
	}
	return routes, nil
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <base-url> <content-dir> [redirects.json]", os.Args[0])
	}
	base, err := url.Parse(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid base URL: %v", err)
	}

	routes, err := contentRoutes(os.Args[2])
	if err != nil {
		log.Fatalf("Failed to read content directory: %v", err)
	}
	if len(os.Args) > 3 {
		legacy, err := redirectRoutes(os.Args[3])
		if err != nil {
			log.Fatalf("Failed to read redirects: %v", err)
		}
		for route, origin := range legacy {
			routes[route] = origin
		}
	}

	c := colly.NewCollector(
		colly.Async(true),
		colly.AllowedDomains(base.Hostname()),
		colly.AllowURLRevisit(),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: runtime.NumCPU(),
	})

	var mu sync.Mutex
	var badRoutes []BadRoute
	report := func(b BadRoute) {
		mu.Lock()
		badRoutes = append(badRoutes, b)
		mu.Unlock()
		printError(b)
	}

	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode != 200 {
			report(BadRoute{
				URL:    r.Request.URL.String(),
				Status: r.StatusCode,
				Origin: r.Ctx.Get("origin"),
			})
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		report(BadRoute{
			URL:    r.Request.URL.String(),
			Status: r.StatusCode,
			Err:    err,
			Origin: r.Ctx.Get("origin"),
		})
	})

	paths := make([]string, 0, len(routes))
	for route := range routes {
		paths = append(paths, route)
	}
	sort.Strings(paths)

	log.Printf("Checking %d routes on %s …\n", len(paths), base)
	for _, route := range paths {
		ctx := colly.NewContext()
		ctx.Put("origin", routes[route])
		if err := c.Request("GET", base.ResolveReference(&url.URL{Path: route}).String(), nil, ctx, nil); err != nil {
			report(BadRoute{URL: route, Err: err, Origin: routes[route]})
		}
	}
	c.Wait()

	if len(badRoutes) == 0 {
		fmt.Println("✅ All routes returned HTTP 200!")
	} else {
		fmt.Printf("\nTotal bad routes found: %d\n", len(badRoutes))
		os.Exit(1)
	}
}
