package feed

import (
	"fmt"
	"time"
)

// The top-level navigation documents are fixed templates, only the updated
// timestamp and (for opensearch) the externally visible base URL vary.

func (r *Renderer) Index() string {
	updated := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opds="http://opds-spec.org/2010/catalog">
  <title>Z-Library OPDS Proxy Directory</title>
  <id>urn:zlib:opds:index</id>
  <updated>%s</updated>
  <link rel="start" type="application/atom+xml" href="/opds/root.xml"/>
  <link rel="search" type="application/opensearchdescription+xml" href="/opds/opensearch.xml"/>
  <link rel="http://opds-spec.org/search" type="application/atom+xml" href="/opds/search?q={searchTerms}"/>
  <entry>
    <title>Root Directory</title>
    <id>urn:zlib:opds:root</id>
    <updated>%s</updated>
    <link rel="subsection" href="/opds/root.xml" type="application/atom+xml"/>
  </entry>
  <entry>
    <title>Bestsellers</title>
    <id>urn:zlib:opds:bestsellers</id>
    <updated>%s</updated>
    <link rel="subsection" href="/opds/bestsellers" type="application/atom+xml"/>
  </entry>
</feed>
`, updated, updated, updated)
}

func (r *Renderer) Root() string {
	updated := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opds="http://opds-spec.org/2010/catalog">
  <id>urn:uuid:zlib-root-feed</id>
  <title>Z-Library OPDS Root</title>
  <updated>%s</updated>
  <author><name>Z-Lib Proxy</name></author>
  <link rel="self" href="/opds/root.xml" type="application/atom+xml"/>
  <link rel="start" href="/opds" type="application/atom+xml"/>
  <link rel="search" type="application/opensearchdescription+xml" href="/opds/opensearch.xml"/>
  <link rel="http://opds-spec.org/search" type="application/atom+xml" href="/opds/search?q={searchTerms}"/>
  <entry>
    <title>Search: Python</title>
    <id>urn:zlib:opds:search:python</id>
    <updated>%s</updated>
    <link rel="subsection" href="/opds/search?q=python" type="application/atom+xml"/>
    <content type="text">Search for books about Python</content>
  </entry>
  <entry>
    <title>Search: Deep Learning</title>
    <id>urn:zlib:opds:search:deep-learning</id>
    <updated>%s</updated>
    <link rel="subsection" href="/opds/search?q=deep%%20learning" type="application/atom+xml"/>
    <content type="text">Search for books about Deep Learning</content>
  </entry>
  <entry>
    <title>Bestsellers</title>
    <id>urn:zlib:opds:bestsellers</id>
    <updated>%s</updated>
    <link rel="subsection" href="/opds/bestsellers" type="application/atom+xml"/>
    <content type="text">Current bestseller list</content>
  </entry>
</feed>
`, updated, updated, updated, updated)
}

func (r *Renderer) OpenSearch(baseURL string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<OpenSearchDescription xmlns="http://a9.com/-/spec/opensearch/1.1/">
  <ShortName>Z-Lib Search</ShortName>
  <Description>Search Z-Library via OPDS</Description>
  <InputEncoding>UTF-8</InputEncoding>
  <Url type="application/atom+xml" template="%s/opds/search?q={searchTerms}"/>
</OpenSearchDescription>
`, baseURL)
}
