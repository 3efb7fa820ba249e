package storage

import "mime/multipart"

// Storage 抽象媒体文件的存取后端
// UploadFile 返回可直接写入帖子 media 列表的公开路径
// DeleteFile 按对象键删除，调用方把失败当作尽力而为处理
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
	DeleteFile(path string) error
}
