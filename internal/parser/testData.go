package parser

var searchResultsWithNext = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>Search results</title>
</head>
<body>
  <div class="search-container">
    <div id="searchResultBox">
      <div class="book-item">
        <z-bookcard id="1177363" download="/dl/1177363/f36c8a" extension="pdf" filesize="23.85 MB" year="2016" publisher="MIT Press" href="/book/1177363/1e1ab0">
          <img data-src="https://covers.test.com/books/1177363.jpg" class="cover"/>
          <div slot="title">Deep Learning</div>
          <div slot="author">Ian Goodfellow, Yoshua Bengio, Aaron Courville</div>
        </z-bookcard>
      </div>
      <div class="book-item">
        <z-bookcard id="2929403" download="/dl/2929403/a91c02" extension="epub" filesize="4.21 MB" year="2019" publisher="O'Reilly" href="/book/2929403/77aa1f">
          <img data-src="https://covers.test.com/books/2929403.jpg" class="cover"/>
          <div slot="title">Deep Learning with Python</div>
          <div slot="author">Francois Chollet</div>
        </z-bookcard>
      </div>
    </div>
    <nav class="pagination">
      <a title="Next page" href="/s/deep%20learning?page=2">&raquo;</a>
    </nav>
  </div>
</body>
</html>`

var searchResultsLastPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"/><title>Search results</title></head>
<body>
  <div id="searchResultBox">
    <div class="book-item">
      <z-bookcard id="3310051" download="/dl/3310051/0b44dd" extension="mobi" filesize="1.02 MB" year="2021" publisher="Self-published" href="/book/3310051/b00b1e">
        <img data-src="https://covers.test.com/books/3310051.jpg" class="cover"/>
        <div slot="title">Deep Learning at the Edge</div>
        <div slot="author">Jane Roe</div>
      </z-bookcard>
    </div>
  </div>
  <nav class="pagination">
    <span class="disabled">&raquo;</span>
  </nav>
</body>
</html>`

var searchResultsMissingFields = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"/><title>Search results</title></head>
<body>
  <div id="searchResultBox">
    <div class="book-item">
      <z-bookcard id="445566" download="/dl/445566/beef01" extension="epub" filesize="2.00 MB">
        <div slot="title">Untitled Author Collection</div>
      </z-bookcard>
    </div>
  </div>
</body>
</html>`

var loginWallPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"/><title>Login</title></head>
<body>
  <form action="/rpc.php" method="post">
    <input type="email" name="email" placeholder="Email"/>
    <input type="password" name="password" placeholder="Password"/>
    <button type="submit">Sign in</button>
  </form>
</body>
</html>`
