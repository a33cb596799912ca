package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pingscope/internal/config"
	"pingscope/internal/locale"
	"pingscope/internal/metrics"
	"pingscope/internal/model"
	"pingscope/internal/notify"
	"pingscope/internal/platform"
	"pingscope/internal/probe"
	"pingscope/internal/registry"
	"pingscope/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (built-in defaults when empty)")
	registryPath := flag.String("registry", "", "Registry file (overrides the configured path)")
	listCountries := flag.Bool("list-countries", false, "List countries present in the registry")
	country := flag.String("country", "", "List servers in this country")
	serverIndex := flag.Int("server", -1, "Probe the server at this index within -country")
	metricsListen := flag.String("metrics-listen", "", "Serve /metrics on this address after the operation")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	path := cfg.RegistryPath()
	if *registryPath != "" {
		path = *registryPath
	}

	listen := cfg.Metrics.Listen
	if *metricsListen != "" {
		listen = *metricsListen
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := metrics.NewExporter(promRegistry, cfg.Metrics.Prefix)
	if err != nil {
		log.Fatalf("failed to create metrics exporter: %v", err)
	}

	loc := locale.Load(cfg.Locale.Dir)
	info := platform.Detect()
	printSystemInfo(loc, info)

	loader := registry.NewLoader(nil, exporter)

	exitCode := 0
	switch {
	case *listCountries:
		printCountries(loc, loader, path)

	case *country != "" && *serverIndex >= 0:
		if !probeServer(loc, loader, exporter, info, cfg, path, *country, *serverIndex) {
			exitCode = 1
		}

	case *country != "":
		printServers(loc, loader, path, *country)

	default:
		flag.Usage()
		exitCode = 2
	}

	if listen != "" {
		log.Printf("serving metrics on %s", listen)
		if err := server.Run(ctx, listen, promRegistry); err != nil {
			log.Fatalf("metrics server exited with error: %v", err)
		}
	}

	notify.Exit(info.Family)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func printSystemInfo(loc *locale.Locale, info platform.Info) {
	fmt.Println(loc.Get("system_info", nil))
	fmt.Printf("%s: %s\n", loc.Get("os_family", nil), info.Family)
	fmt.Printf("%s: %s\n", loc.Get("kernel", nil), info.KernelVersion())
	fmt.Printf("%s: %s\n", loc.Get("distribution", nil), info.Distribution())
}

func printCountries(loc *locale.Locale, loader *registry.Loader, path string) {
	countries := loader.Countries(path)
	if len(countries) == 0 {
		fmt.Println(loc.Get("no_countries", nil))
		return
	}

	fmt.Println(loc.Get("available_countries", nil))
	for i, country := range countries {
		fmt.Printf("%d. %s\n", i+1, country)
	}
}

func printServers(loc *locale.Locale, loader *registry.Loader, path, country string) {
	servers := loader.Servers(path, country)
	if len(servers) == 0 {
		fmt.Println(loc.Get("no_servers", map[string]string{"country": country}))
		return
	}

	fmt.Println(loc.Get("servers_in", map[string]string{"country": country}))
	for i, srv := range servers {
		fmt.Printf("%d. %s (%s)\n", i+1, srv.Name, srv.Address)
	}
}

func probeServer(
	loc *locale.Locale,
	loader *registry.Loader,
	exporter *metrics.Exporter,
	info platform.Info,
	cfg model.Config,
	path, country string,
	index int,
) bool {
	servers := loader.Servers(path, country)
	if index >= len(servers) {
		fmt.Println(loc.Get("invalid_server", nil))
		return false
	}

	srv := servers[index]
	fmt.Println(loc.Get("pinging", map[string]string{"server_name": srv.Name}))

	prober := probe.NewProber(
		info.Family,
		nil,
		probe.WithTimeout(cfg.Probe.Timeout.Duration()),
		probe.WithObserver(exporter),
	)

	reachable, err := prober.Probe(srv)
	if err != nil {
		log.Fatalf("cannot probe on this platform: %v", err)
	}

	if reachable {
		fmt.Println(loc.Get("reachable", map[string]string{"server_name": srv.Name}))
	} else {
		fmt.Println(loc.Get("unreachable", map[string]string{"server_name": srv.Name}))
	}

	return reachable
}
