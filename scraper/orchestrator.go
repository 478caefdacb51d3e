package scraper

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"zameen_watcher/config"
	"zameen_watcher/models"
	"zameen_watcher/notify"
	"zameen_watcher/storage"
)

// Orchestrator runs one scrape pass per configured search: scan results
// pages, visit each listing detail page, write the CSV, email the delta
// of never-before-seen listings and fold them into the seen store.
type Orchestrator struct {
	cfg      *config.Config
	store    *storage.Store
	mailer   *notify.Mailer
	renderer *Renderer
}

func NewOrchestrator(cfg *config.Config, store *storage.Store) *Orchestrator {
	o := &Orchestrator{
		cfg:   cfg,
		store: store,
		renderer: NewRenderer(
			time.Duration(cfg.Renderer.NavTimeoutMS)*time.Millisecond,
			time.Duration(cfg.Renderer.SettleDelayMS)*time.Millisecond,
		),
	}
	if cfg.SMTP.Configured() {
		o.mailer = notify.NewMailer(cfg.SMTP)
	}
	return o
}

func (o *Orchestrator) RunAll(ctx context.Context) error {
	for searchID := range o.cfg.Searches {
		if err := o.RunSearch(ctx, searchID); err != nil {
			log.Printf("Error running search %s: %v", searchID, err)
		}
	}
	return nil
}

func (o *Orchestrator) RunSearch(ctx context.Context, searchID string) error {
	search, ok := o.cfg.Searches[searchID]
	if !ok {
		return fmt.Errorf("unknown search: %s", searchID)
	}

	run := &models.ScrapeRun{
		SearchID:  searchID,
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	if err := o.store.CreateRun(run); err != nil {
		return err
	}

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err := o.store.UpdateRun(run); err != nil {
			log.Printf("Error updating run %s: %v", run.ID, err)
		}
	}()
	defer o.renderer.Close()

	links, err := o.collectLinks(ctx, search, run)
	if err != nil {
		run.Status = models.RunStatusFailed
		return err
	}
	log.Printf("Total unique listings found: %d", len(links))

	listings := o.visitListings(ctx, links, run)
	run.ListingsFound = len(listings)

	if err := storage.WriteCSV(search.CSVPath, listings); err != nil {
		run.Status = models.RunStatusFailed
		return err
	}
	log.Printf("Saved -> %s (%d rows)", search.CSVPath, len(listings))

	if err := o.notifyAndRemember(search, listings, run); err != nil {
		run.Status = models.RunStatusFailed
		return err
	}

	run.Status = models.RunStatusCompleted
	return nil
}

// collectLinks scans results pages in order until one yields no listing
// links, which is the end-of-results signal, not an error.
func (o *Orchestrator) collectLinks(ctx context.Context, search *config.SearchConfig, run *models.ScrapeRun) ([]string, error) {
	pageURLs := BuildPageURLs(search.ResultsURL, search.MaxPages)

	seen := make(map[string]struct{})
	var all []string

	for idx, pageURL := range pageURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Printf("Scanning page %d: %s", idx+1, pageURL)

		html, err := o.renderer.Render(pageURL)
		if err != nil {
			return nil, fmt.Errorf("results page %d: %w", idx+1, err)
		}
		run.PagesScanned++

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parse results page %d: %w", idx+1, err)
		}

		links := CollectListingLinks(doc)
		if len(links) == 0 {
			log.Println("No more listings found, stopping pagination.")
			break
		}

		for _, link := range links {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			all = append(all, link)
		}
	}

	if search.MaxListings > 0 && len(all) > search.MaxListings {
		all = all[:search.MaxListings]
	}

	return all, nil
}

// visitListings renders each detail page and extracts a record. A single
// page's failure is logged and skipped, never fatal to the batch.
func (o *Orchestrator) visitListings(ctx context.Context, links []string, run *models.ScrapeRun) []models.Listing {
	var listings []models.Listing

	for idx, link := range links {
		if ctx.Err() != nil {
			break
		}

		html, err := o.renderer.Render(link)
		if err != nil {
			log.Printf("[%d/%d] FAIL: %s (%v)", idx+1, len(links), link, err)
			run.ErrorsCount++
			continue
		}

		listing, err := ParseDetailPage(html, link)
		if err != nil {
			log.Printf("[%d/%d] FAIL: %s (%v)", idx+1, len(links), link, err)
			run.ErrorsCount++
			continue
		}

		listings = append(listings, listing)
		log.Printf("[%d/%d] OK: %s | %s bed | %s %s | %s",
			idx+1, len(links), listing.PriceText, listing.Beds, listing.Area, listing.AreaUnit, listing.Address)
	}

	return listings
}

// notifyAndRemember computes the new-listings delta, sends the digest and
// folds this run's links into the seen store. The store update runs even
// when the email send fails; a send failure only counts against the run.
func (o *Orchestrator) notifyAndRemember(search *config.SearchConfig, listings []models.Listing, run *models.ScrapeRun) error {
	seen, err := o.store.LoadSeen()
	if err != nil {
		return err
	}

	var toEmail []models.Listing
	if len(seen) == 0 {
		// First run: no baseline yet, report everything.
		log.Println("First run detected: sending all listings")
		toEmail = listings
	} else {
		for _, l := range listings {
			if l.Link == "" {
				continue
			}
			if _, ok := seen[l.Link]; !ok {
				toEmail = append(toEmail, l)
			}
		}
	}
	run.ListingsNew = len(toEmail)

	if len(toEmail) > 0 {
		subject := fmt.Sprintf("Zameen Rentals Update: %d listing(s)", len(toEmail))
		body := notify.BuildDigest(toEmail)

		if o.mailer != nil {
			if err := o.mailer.Send(subject, body); err != nil {
				log.Printf("Email send failed: %v", err)
				run.ErrorsCount++
			} else {
				run.EmailSent = true
				log.Println("Email sent.")

				// flag file marks a delivered digest, not just new listings
				if search.FlagPath != "" {
					if err := os.WriteFile(search.FlagPath, []byte(strconv.Itoa(len(toEmail))), 0644); err != nil {
						log.Printf("Error writing flag file: %v", err)
					}
				}
			}
		} else {
			log.Println("SMTP not configured, skipping email")
		}
	} else {
		log.Println("No new listings. No email sent.")
	}

	var current []string
	for _, l := range listings {
		if l.Link != "" {
			current = append(current, l.Link)
		}
	}
	return o.store.AddSeen(current)
}
