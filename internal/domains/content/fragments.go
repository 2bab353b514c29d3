package content

import (
	"wedding-site/internal/domains/content/model"
	"wedding-site/internal/infrastructure/render"
)

// One fragment per entry, in document order.

func profileFragments(profiles []model.Profile) []render.Element {
	frags := make([]render.Element, 0, len(profiles))
	for _, p := range profiles {
		frags = append(frags, render.El("div", "profile-card").WithChildren(
			render.El("img", "profile-img").WithAttr("src", p.Image).WithAttr("alt", p.Name),
			render.El("h3", "profile-name").WithText(p.Name),
			render.El("p", "profile-desc").WithText(p.Desc),
		))
	}
	return frags
}

func bioFragments(entries []model.BioEntry) []render.Element {
	frags := make([]render.Element, 0, len(entries))
	for _, b := range entries {
		frags = append(frags, render.El("div", "timeline-item").WithChildren(
			render.El("div", "timeline-marker"),
			render.El("div", "timeline-info").WithChildren(
				render.El("span", "timeline-year").WithText(b.Year),
				render.El("h4", "timeline-title").WithText(b.Title),
				render.El("p").WithText(b.Text),
			),
		))
	}
	return frags
}

func storyFragments(entries []model.StoryEntry) []render.Element {
	frags := make([]render.Element, 0, len(entries))
	for _, s := range entries {
		frags = append(frags, render.El("div", "story-item").WithChildren(
			render.El("div", "story-img-box").WithChildren(
				render.El("img").WithAttr("src", s.Image).WithAttr("alt", ""),
			),
			render.El("div", "story-content").WithChildren(
				render.El("h4").WithText(s.Date+" | "+s.Title),
				render.El("p").WithText(s.Text),
			),
		))
	}
	return frags
}
