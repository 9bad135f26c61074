/*
Package fetch downloads dataset files on demand
*/
package fetch

import (
	"github.com/jlaffaye/ftp"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"io"
	"net/url"
	"os"
	"strings"
	"time"
)

/*
Source is a remote or local payload to download
*/
type Source interface {
	Open() (io.ReadCloser, error)
}

// DefaultFtpTimeout limits FTP dialing
const DefaultFtpTimeout = 30 * time.Second

/*
Remote returns source for the url, http(s) goes through iokit, ftp logs in
anonymously, file urls and bare paths are local files
*/
func Remote(rawurl string) (Source, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, zorros.Wrapf(err, "bad dataset url `%v`: %v", rawurl, err.Error())
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return iokit.Url(rawurl), nil
	case "ftp":
		f := Ftp{Addr: u.Host, Path: u.Path}
		if u.Port() == "" {
			f.Addr = u.Host + ":21"
		}
		if u.User != nil {
			f.User = u.User.Username()
			f.Password, _ = u.User.Password()
		}
		return f, nil
	case "file":
		return File(u.Path), nil
	case "":
		return File(rawurl), nil
	}
	return nil, zorros.Errorf("unsupported url scheme `%v`", u.Scheme)
}

/*
File is a local file source
*/
type File string

func (f File) Open() (io.ReadCloser, error) {
	r, err := os.Open(string(f))
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return r, nil
}

/*
Ftp is a file on FTP server, empty User means anonymous login
*/
type Ftp struct {
	Addr     string // host:port
	Path     string
	User     string
	Password string
	Timeout  time.Duration
}

func (f Ftp) Open() (io.ReadCloser, error) {
	timeout := f.Timeout
	if timeout == 0 {
		timeout = DefaultFtpTimeout
	}
	c, err := ftp.Dial(f.Addr, ftp.DialWithTimeout(timeout))
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to connect %v: %v", f.Addr, err.Error())
	}
	user, password := f.User, f.Password
	if user == "" {
		user, password = "anonymous", "anonymous"
	}
	if err = c.Login(user, password); err != nil {
		c.Quit()
		return nil, zorros.Wrapf(err, "failed to login %v: %v", f.Addr, err.Error())
	}
	r, err := c.Retr(f.Path)
	if err != nil {
		c.Quit()
		return nil, zorros.Wrapf(err, "failed to retrieve %v: %v", f.Path, err.Error())
	}
	return &ftpReader{r, c}, nil
}

type ftpReader struct {
	*ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReader) Close() error {
	err := r.Response.Close()
	r.conn.Quit()
	return err
}
