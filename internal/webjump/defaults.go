package webjump

// templateJump is a webjump defined by a URL template, used by the bulk helpers.
type templateJump struct {
	key         string
	url         string
	alternative string
}

func defineAll(r *Registry, jumps []templateJump) error {
	for _, j := range jumps {
		if err := r.Define(j.key, Template(j.url), Options{Alternative: j.alternative}); err != nil {
			return err
		}
	}
	return nil
}

// DefineDefaults registers the built-in webjumps.
func DefineDefaults(r *Registry) error {
	return defineAll(r, []templateJump{
		{key: "conkerorwiki", url: "http://conkeror.org/?action=fullsearch&context=60&value=%s&fullsearch=Text"},
		{key: "lucky", url: "http://www.google.com/search?q=%s&btnI=I'm Feeling Lucky"},
		{key: "maps", url: "http://maps.google.com/?q=%s"},
		{key: "scholar", url: "http://scholar.google.com/scholar?q=%s"},
		{key: "clusty", url: "http://www.clusty.com/search?query=%s"},
		{key: "slang", url: "http://www.urbandictionary.com/define.php?term=%s"},
		{key: "dictionary", url: "http://dictionary.reference.com/search?q=%s"},
		{key: "image", url: "http://images.google.com/images?q=%s"},
		{
			key:         "clhs",
			url:         "http://www.xach.com/clhs?q=%s",
			alternative: "http://www.lispworks.com/documentation/HyperSpec/Front/index.htm",
		},
		{key: "cliki", url: "http://www.cliki.net/admin/search?words=%s"},
		{key: "ratpoisonwiki", url: "http://ratpoison.antidesktop.net/?search=%s"},
		{key: "stumpwmwiki", url: "http://stumpwm.antidesktop.net/wiki?search=%s"},
		{key: "savannah", url: "http://savannah.gnu.org/search/?words=%s&type_of_search=soft&Search=Search&exact=1"},
		{key: "sourceforge", url: "http://sourceforge.net/search/?words=%s"},
		{key: "freshmeat", url: "http://freshmeat.net/search/?q=%s"},
		{key: "slashdot", url: "http://slashdot.org/search.pl?query=%s"},
		{key: "kuro5hin", url: "http://www.kuro5hin.org/?op=search&string=%s"},
	})
}

// DefineDeliciousWebjumps registers bookmarking and search webjumps for a
// delicious.com user.
func DefineDeliciousWebjumps(r *Registry, username string) error {
	return defineAll(r, []templateJump{
		{
			key:         "delicious",
			url:         "http://www.delicious.com/" + username + "/%s",
			alternative: "http://www.delicious.com/" + username,
		},
		{
			key: "adelicious",
			url: "javascript:location.href='http://www.delicious.com/" + username +
				"?v=2&url='+encodeURIComponent(location.href)+'&title='+" +
				"encodeURIComponent(document.title);",
		},
		{
			key: "sdelicious",
			url: "http://www.delicious.com/search?p=%s&u=" + username +
				"&chk=&context=userposts&fr=del_icio_us&lc=1",
		},
		{key: "sadelicious", url: "http://www.delicious.com/search/all?search=%s"},
	})
}

// DefineLastfmWebjumps registers last.fm webjumps. The "lastfm" webjump
// opens the given user's page; username may be empty.
func DefineLastfmWebjumps(r *Registry, username string) error {
	return defineAll(r, []templateJump{
		{key: "lastfm", url: "http://www.last.fm/user/" + username},
		{key: "lastfm-user", url: "http://www.last.fm/user/%s"},
		{key: "lastfm-music", url: "http://www.last.fm/search?m=all&q=%s"},
		{key: "lastfm-group", url: "http://www.last.fm/users/groups?s_bio=%s"},
		{key: "lastfm-tag", url: "http://www.last.fm/search?m=tag&q=%s"},
		{key: "lastfm-label", url: "http://www.last.fm/search?m=label&q=%s"},
		{key: "lastfm-event", url: "http://www.last.fm/events?by=artists&q=%s"},
	})
}
