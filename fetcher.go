package main

import (
	"context"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Fetcher implements ImageSource on top of the image list: an LRU cache of
// decoded images plus a background preloader that warms the cache around
// the current position and reports completions as queued events.
type Fetcher struct {
	list    *ImageList
	cache   *lru.Cache[string, *Image]
	current *Image

	queue       chan<- Event
	preload     int
	requestChan chan int
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewFetcher creates a fetcher with the given cache capacity. preload is
// the number of neighbors warmed on each side of the current index; zero
// disables background loading entirely.
func NewFetcher(list *ImageList, cacheSize, preload int, queue chan<- Event) *Fetcher {
	cache, err := lru.NewWithEvict[string, *Image](cacheSize, func(_ string, img *Image) {
		for i := range img.Frames {
			if img.Frames[i].Img != nil {
				img.Frames[i].Img.Deallocate()
			}
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *Image](16, func(_ string, img *Image) {
			for i := range img.Frames {
				if img.Frames[i].Img != nil {
					img.Frames[i].Img.Deallocate()
				}
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &Fetcher{
		list:        list,
		cache:       cache,
		queue:       queue,
		preload:     preload,
		requestChan: make(chan int, 16),
		ctx:         ctx,
		cancel:      cancel,
	}
	if preload > 0 {
		go f.worker()
	}
	return f
}

// Stop terminates the preload worker.
func (f *Fetcher) Stop() {
	f.cancel()
}

// Current returns the active image.
func (f *Fetcher) Current() *Image {
	return f.current
}

// Open makes the entry at index current, decoding synchronously on a cache
// miss. The current image is kept in the cache, so re-opening is cheap.
func (f *Fetcher) Open(index int) bool {
	entry, ok := f.list.Entry(index)
	if !ok {
		return false
	}

	img, ok := f.cache.Get(entry.Path)
	if !ok {
		var err error
		img, err = loadImage(entry)
		if err != nil {
			log.Printf("Error: Failed to load image [%d/%d] %s: %v",
				index+1, f.list.Len(), entry.Path, err)
			return false
		}
		f.cache.Add(entry.Path, img)
	}
	img.Index = index
	f.current = img

	f.startPreload(index)
	return true
}

// Reset re-opens index, dropping its cached decode when forceReload is
// set. If the entry no longer loads, the nearest loadable neighbor is
// opened instead: forward first, then backward.
func (f *Fetcher) Reset(index int, forceReload bool) bool {
	if forceReload {
		if entry, ok := f.list.Entry(index); ok {
			f.cache.Remove(entry.Path)
		}
	}
	if f.Open(index) {
		return true
	}
	for i := f.list.NextFile(index); i != invalidIndex && i != index; i = f.list.NextFile(i) {
		if f.Open(i) {
			return true
		}
	}
	for i := f.list.PrevFile(index); i != invalidIndex && i != index; i = f.list.PrevFile(i) {
		if f.Open(i) {
			return true
		}
	}
	return false
}

// Attach adopts a background-decoded image into the cache.
func (f *Fetcher) Attach(index int, img *Image) {
	if img == nil {
		return
	}
	entry, ok := f.list.Entry(index)
	if !ok {
		return
	}
	img.Index = index
	if _, cached := f.cache.Get(entry.Path); !cached {
		f.cache.Add(entry.Path, img)
	}
}

// startPreload queues a cache warm-up around index, dropping any stale
// pending request first.
func (f *Fetcher) startPreload(index int) {
	if f.preload <= 0 {
		return
	}
drain:
	for {
		select {
		case <-f.requestChan:
		default:
			break drain
		}
	}
	select {
	case f.requestChan <- index:
	default:
		debugLog("preload request channel full, skipping")
	}
}

func (f *Fetcher) worker() {
	for {
		select {
		case <-f.ctx.Done():
			return
		case index := <-f.requestChan:
			f.preloadAround(index)
		}
	}
}

// preloadAround decodes the neighbors of index that are not cached yet and
// posts each completion to the event queue. The update goroutine attaches
// them; the worker itself never touches the cache or the current image.
func (f *Fetcher) preloadAround(index int) {
	for step := 1; step <= f.preload; step++ {
		for _, i := range []int{index + step, index - step} {
			select {
			case <-f.ctx.Done():
				return
			default:
			}
			entry, ok := f.list.Entry(i)
			if !ok {
				continue
			}
			if _, cached := f.cache.Peek(entry.Path); cached {
				continue
			}
			img, err := loadImage(entry)
			if err != nil {
				debugLog("preload failed for [%d] %s: %v", i+1, entry.Path, err)
				continue
			}
			debugLog("preloaded [%d] %s", i+1, entry.Path)
			postEvent(f.queue, Event{Kind: eventImageLoaded, Index: i, Img: img})
		}
	}
}
