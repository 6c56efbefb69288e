package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/oglasna/internal/model"
)

func testRenderer() *Renderer {
	return &Renderer{
		Platforms: []string{"facebook", "instagram"},
		ShareHref: func(kind model.Kind, ref, platform string) string {
			return "/share/" + string(kind) + "/" + ref + "/" + platform
		},
		Location: time.UTC,
	}
}

func prayers(records ...model.Prayer) []Entry[model.Prayer] {
	entries := make([]Entry[model.Prayer], len(records))
	for i, p := range records {
		entries[i] = Entry[model.Prayer]{Index: i, Record: p}
	}
	return entries
}

func TestPrayersFeaturedSplit(t *testing.T) {
	tests := []struct {
		name         string
		records      []model.Prayer
		wantFeatured []string
		wantList     []string
	}{
		{"empty", nil, nil, nil},
		{"one", []model.Prayer{{ID: "a"}}, []string{"a"}, nil},
		{"three", []model.Prayer{{ID: "a"}, {ID: "b"}, {ID: "c"}}, []string{"a"}, []string{"b", "c"}},
		{"private top is skipped", []model.Prayer{{ID: "a", Private: true}, {ID: "b"}, {ID: "c"}}, []string{"b"}, []string{"c"}},
		{"private in the middle", []model.Prayer{{ID: "a"}, {ID: "b", Private: true}, {ID: "c"}}, []string{"a"}, []string{"c"}},
		{"all private", []model.Prayer{{ID: "a", Private: true}, {ID: "b", Private: true}}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage()
			testRenderer().Prayers(page, prayers(tt.records...))

			assertIDs(t, page.Items(SlotPrayerFeatured), tt.wantFeatured)
			assertIDs(t, page.Items(SlotPrayers), tt.wantList)
		})
	}
}

func TestNeedsFeaturedSplit(t *testing.T) {
	for n := 0; n <= 4; n++ {
		var entries []Entry[model.Need]
		for i := 0; i < n; i++ {
			entries = append(entries, Entry[model.Need]{Index: i, Record: model.Need{Type: model.NeedTypeNeed, Name: "x"}})
		}

		page := NewPage()
		testRenderer().Needs(page, entries)

		wantFeatured, wantList := 0, 0
		if n > 0 {
			wantFeatured, wantList = 1, n-1
		}
		if got := len(page.Items(SlotNeedsFeatured)); got != wantFeatured {
			t.Errorf("n=%d: expected %d featured, got %d", n, wantFeatured, got)
		}
		if got := len(page.Items(SlotNeeds)); got != wantList {
			t.Errorf("n=%d: expected %d listed, got %d", n, wantList, got)
		}
	}
}

func TestRenderClearsPreviousItems(t *testing.T) {
	page := NewPage()
	r := testRenderer()

	r.Prayers(page, prayers(model.Prayer{ID: "a"}, model.Prayer{ID: "b"}))
	r.Prayers(page, nil)

	if len(page.Items(SlotPrayers)) != 0 || len(page.Items(SlotPrayerFeatured)) != 0 {
		t.Error("expected re-render with no records to clear both slots")
	}
	if !page.Has(SlotPrayers) || !page.Has(SlotPrayerFeatured) {
		t.Error("expected cleared slots to still count as rendered")
	}
}

func TestNeedHeadingAndShares(t *testing.T) {
	page := NewPage()
	testRenderer().Needs(page, []Entry[model.Need]{
		{Index: 3, Record: model.Need{ID: "n1", Type: model.NeedTypeOffer, Name: "Ana &amp; Bor", Details: "2 chairs"}},
		{Index: 1, Record: model.Need{Type: model.NeedTypeNeed, Name: "Anonymous", Details: "a ride"}},
	})

	featured := page.Items(SlotNeedsFeatured)[0]
	if featured.Heading != "OFFER - Ana &amp; Bor" {
		t.Errorf("unexpected heading %q", featured.Heading)
	}
	if featured.ImageAlt != "offer image" {
		t.Errorf("unexpected alt %q", featured.ImageAlt)
	}
	if len(featured.Shares) != 2 || featured.Shares[0].Href != "/share/needs/n1/facebook" {
		t.Errorf("unexpected share controls %#v", featured.Shares)
	}

	// Records without an id are shared by their persisted index.
	listed := page.Items(SlotNeeds)[0]
	if listed.Shares[1].Href != "/share/needs/i1/instagram" {
		t.Errorf("expected index-based share ref, got %q", listed.Shares[1].Href)
	}
}

func TestAnnouncementsHaveNoShares(t *testing.T) {
	page := NewPage()
	testRenderer().Announcements(page, []Entry[model.Announcement]{
		{Record: model.Announcement{Title: "Hi", Body: "there", Date: model.At(time.Date(2025, 3, 4, 17, 5, 0, 0, time.UTC))}},
	})

	items := page.Items(SlotAnnouncements)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Shares != nil {
		t.Errorf("announcements should not carry share controls")
	}
	if items[0].Timestamp != "Mar 4, 2025, 5:05 PM" {
		t.Errorf("unexpected timestamp %q", items[0].Timestamp)
	}
}

func TestEventsLinkAndDate(t *testing.T) {
	page := NewPage()
	testRenderer().Events(page, []Entry[model.Event]{
		{Record: model.Event{Title: "Potluck", Date: "2025-12-01"}},
		{Record: model.Event{Title: "Choir", Date: "sometime soon", Link: "https://example.com/choir"}},
	})

	items := page.Items(SlotEvents)
	if items[0].Link != "" {
		t.Errorf("expected no link for Potluck, got %q", items[0].Link)
	}
	if items[0].Timestamp != "Dec 1, 2025, 12:00 AM" {
		t.Errorf("unexpected timestamp %q", items[0].Timestamp)
	}
	if items[1].Timestamp != "sometime soon" {
		t.Errorf("expected unparsable date to be shown as entered, got %q", items[1].Timestamp)
	}
	if items[1].Link != "https://example.com/choir" {
		t.Errorf("unexpected link %q", items[1].Link)
	}
}

func TestImageSrcRewrite(t *testing.T) {
	r := testRenderer()
	r.ImageSrc = func(src string) string { return "/thumb?src=" + src }

	page := NewPage()
	r.Announcements(page, []Entry[model.Announcement]{
		{Record: model.Announcement{Title: "a", Image: "https://example.com/a.png"}},
		{Record: model.Announcement{Title: "b"}},
	})

	items := page.Items(SlotAnnouncements)
	if !strings.HasPrefix(items[0].Image, "/thumb?src=") {
		t.Errorf("expected rewritten image, got %q", items[0].Image)
	}
	if items[1].Image != "" {
		t.Errorf("expected empty image to stay empty, got %q", items[1].Image)
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref     string
		id      string
		index   int
		byIndex bool
	}{
		{"i0", "", 0, true},
		{"i12", "", 12, true},
		{"4f1c2a7e-9b1d-4c4e-8a53-2f1f0e6a9c11", "4f1c2a7e-9b1d-4c4e-8a53-2f1f0e6a9c11", 0, false},
		{"i-1", "i-1", 0, false},
		{"ix", "ix", 0, false},
	}

	for _, tt := range tests {
		id, index, byIndex := ParseRef(tt.ref)
		if id != tt.id || index != tt.index || byIndex != tt.byIndex {
			t.Errorf("ParseRef(%q) = (%q, %d, %v), want (%q, %d, %v)", tt.ref, id, index, byIndex, tt.id, tt.index, tt.byIndex)
		}
	}
	if Ref("", 5) != "i5" || Ref("abc", 5) != "abc" {
		t.Error("Ref does not round trip with ParseRef")
	}
}

func TestItemRefFallsBackToIndex(t *testing.T) {
	page := NewPage()
	testRenderer().Announcements(page, []Entry[model.Announcement]{
		{Index: 0, Record: model.Announcement{ID: "a1", Title: "New"}},
		{Index: 2, Record: model.Announcement{Title: "Legacy"}},
		{Index: 1, Record: model.Announcement{Title: "Older legacy"}},
	})

	var refs []string
	for _, it := range page.Items(SlotAnnouncements) {
		refs = append(refs, it.Ref())
	}
	want := "a1,i2,i1"
	if got := strings.Join(refs, ","); got != want {
		t.Errorf("expected refs %s, got %s", want, got)
	}
}

func TestUnreadableDateShowsNoTimestamp(t *testing.T) {
	var p model.Prayer
	if err := json.Unmarshal([]byte(`{"id":"p1","msg":"hi","date":"Invalid Date"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	page := NewPage()
	testRenderer().Prayers(page, []Entry[model.Prayer]{{Record: p}})

	items := page.Items(SlotPrayerFeatured)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Timestamp != "" {
		t.Errorf("expected no timestamp, got %q", items[0].Timestamp)
	}
}

func assertIDs(t *testing.T, items []Item, want []string) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.ID != want[i] {
			t.Errorf("item %d: expected id %q, got %q", i, want[i], item.ID)
		}
	}
}
